package main

import (
	"os"
	"runtime/debug"

	"github.com/gigurra/randplay/cmd/configure"
	"github.com/gigurra/randplay/cmd/play"
	"github.com/gigurra/randplay/cmd/scan"
)

func main() {
	root := play.Cmd()
	root.Version = appVersion()
	root.SetOut(os.Stdout)
	root.AddCommand(
		scan.Cmd(),
		configure.Cmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
