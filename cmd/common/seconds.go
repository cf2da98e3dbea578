package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxSeconds bounds parsed second values so they convert safely to time.Duration.
const MaxSeconds = 100 * 365 * 24 * 60 * 60

var ErrInvalidSeconds = errors.New("invalid number of seconds")

// ParseSeconds parses a decimal number of seconds and rounds it up to a whole second.
// Negative values are returned as-is; callers decide what they mean.
func ParseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidSeconds)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeconds, s)
	}

	v = math.Ceil(v)
	if math.Abs(v) > MaxSeconds {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidSeconds, s)
	}

	return int(v), nil
}
