// Package notify provides desktop notifications for played tracks.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications, at most one per cooldown period.
type Notifier struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     time.Time

	now      func() time.Time
	send     func(title, body string) error
	fallback io.Writer
}

// New creates a Notifier backed by the OS notification service.
func New(cooldown time.Duration) *Notifier {
	return &Notifier{
		cooldown: cooldown,
		now:      time.Now,
		send:     platformSend,
		fallback: os.Stderr,
	}
}

func platformSend(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Notify sends a notification unless one was sent within the cooldown.
// Reports whether a notification went out.
func (n *Notifier) Notify(title, body string) bool {
	if n == nil {
		return false
	}

	n.mu.Lock()
	now := n.now()
	if !n.last.IsZero() && now.Sub(n.last) < n.cooldown {
		n.mu.Unlock()
		return false
	}
	n.last = now
	n.mu.Unlock()

	if err := n.send(title, body); err != nil {
		// Final fallback to stderr
		_, _ = fmt.Fprintf(n.fallback, "[notify] %s: %s\n", title, body)
	}
	return true
}
