// Udplog-ctl is a control utility for esp32-udp-logger devices.
//
// It discovers devices on the local network via mDNS, sends them plaintext
// UDP control commands (bind/unbind/status/broadcast toggle), and can listen
// for the UDP log stream the devices emit.
//
// Usage:
//
//	udplog-ctl [command] [flags]
//
// See 'udplog-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/udplog/internal/logging"
	"github.com/muurk/udplog/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "udplog-ctl",
	Short: "ESP32 UDP Logger Control Utility",
	Long: `A standalone utility for controlling esp32-udp-logger devices.

Discovers devices advertising the _esp32udplog._udp mDNS service, sends
control commands over UDP (bind a device's log stream to this machine,
revert to broadcast, toggle broadcasting, query status), and listens for
the resulting UDP log stream.`,
	Version: version.Version,
	// Fatal errors print exactly one descriptive message from main
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("udplog-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
