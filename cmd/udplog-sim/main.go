// Udplog-sim is a software stand-in for an esp32-udp-logger device.
//
// It advertises the _esp32udplog._udp mDNS service, answers the device
// control protocol (bind/unbind/status/broadcast toggle) with the same
// replies as real firmware, and emits a scripted stream of synthetic log
// datagrams. Useful for developing against udplog-ctl without hardware.
//
// Usage:
//
//	udplog-sim run [flags]
//
// See 'udplog-sim run --help' for available options.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/udplog/internal/logging"
	"github.com/muurk/udplog/internal/sim"
	"github.com/muurk/udplog/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "udplog-sim",
	Short: "ESP32 UDP Logger Device Simulator",
	Long: `A simulated esp32-udp-logger device for development and testing.

Advertises itself via mDNS, answers UDP control commands exactly like real
firmware, and emits synthetic log datagrams in broadcast or bound-unicast
mode.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	hostname   string
	port       int
	interval   time.Duration
	noMDNS     bool
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (flags override its values)")
	runCmd.Flags().StringVar(&hostname, "hostname", "", "Advertised instance name")
	runCmd.Flags().IntVar(&port, "port", 0, "Command (RX) port")
	runCmd.Flags().DurationVar(&interval, "interval", 0, "Delay between synthetic log lines")
	runCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Do not advertise via mDNS")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulated device until interrupted",
	Example: `  # Defaults: random hostname, command port 9998, one log line per second
  udplog-sim run

  # Scripted log output from a config file
  udplog-sim run --config sim.yaml

  # Faster log stream on a custom port
  udplog-sim run --port 4242 --interval 100ms`,
	RunE: runSim,
}

func runSim(cmd *cobra.Command, args []string) error {
	// A dev tool should be chatty by default, unlike the operator CLI
	level := os.Getenv(logging.LogLevelEnvVar)
	if level == "" {
		level = "info"
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}
	defer logging.Sync()

	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = sim.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("hostname") {
		cfg.Hostname = hostname
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = sim.Duration(interval)
	}
	if noMDNS {
		cfg.MDNS = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return sim.New(cfg).Run(ctx)
}
