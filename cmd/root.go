package cmd

import (
	"fmt"
	"os"
)

// Version is the release reported by "flo version" and the TUI header.
var Version = "v0.2.0"

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"creds":    true,
	"discover": true,
	"watch":    true,
	"config":   true,
	"themes":   true,
	"version":  true,
	"help":     true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "creds":
		credsCmd(args[1:])
	case "discover":
		discoverCmd(args[1:])
	case "watch":
		watchCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Println("flo " + Version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`flo - SNMP interface monitor

Usage:
  flo                       Launch TUI monitor
  flo --dashboard NAME      Launch with specific dashboard
  flo --theme NAME          Launch with theme override
  flo --log FILE [-v N]     Write engine logs to FILE while the TUI runs
  flo creds <cmd>           Manage SNMP credentials
  flo discover HOST         Discover device interfaces
  flo watch NAME            Poll a dashboard and log rates (no TUI)
  flo config <cmd>          Manage configuration
  flo themes                List available themes
  flo version               Show version
  flo help                  Show this help

Credential Commands:
  flo creds list                   List all credentials
  flo creds add                    Add a new credential (interactive)
  flo creds remove NAME            Remove a credential
  flo creds test NAME HOST[:PORT] Test SNMP connectivity

Discovery:
  flo discover [--creds NAME] HOST    Discover interfaces on a device

Watch:
  flo watch [-v N] [--count N] NAME   Log rates and history stats per poll

Config Commands:
  flo config path                  Show config directory path
  flo config theme NAME            Set default theme
  flo config identity NAME         Set default credential
  flo config history SAMPLES       Set samples kept per interface

Environment:
  FLO_MASTER_KEY                   Credential vault password`)
}
