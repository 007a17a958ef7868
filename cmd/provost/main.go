// Package main is the entry point for the provost CLI.
//
// provost provisions a Linux web server (Nginx, PHP-FPM, MySQL, Redis,
// SSH hardening, firewall, tunnel agent), installs WordPress on top of it,
// and runs monitoring checks that post alerts to a Discord-style webhook.
//
// Commands: init, setup, wordpress, monitor, notify, doctor.
//
// For detailed usage information, run:
//
//	provost --help
package main

import (
	"fmt"
	"os"

	"github.com/provost-sh/provost/cmd/provost/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
