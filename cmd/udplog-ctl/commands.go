package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/udplog/internal/control"
	"github.com/muurk/udplog/internal/discovery"
	"github.com/muurk/udplog/internal/logstream"
	"github.com/muurk/udplog/internal/ui"
)

// Command flags
var (
	pcIP       string
	txPort     int
	listenPort int
)

func init() {
	pickCmd.Flags().IntVar(&txPort, "tx-port", control.DefaultListenPort, "Your PC receive port")

	bindCmd.Flags().StringVar(&pcIP, "pc-ip", "", "Your PC IP (auto-detected if omitted)")
	bindCmd.Flags().IntVar(&txPort, "tx-port", control.DefaultListenPort, "Your PC receive port")

	listenCmd.Flags().IntVar(&listenPort, "port", control.DefaultListenPort, "UDP port to listen on")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(bindCmd)
	rootCmd.AddCommand(unbindCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(broadcastOnCmd)
	rootCmd.AddCommand(broadcastOffCmd)
	rootCmd.AddCommand(listenCmd)
}

// listCmd prints every discovered device
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices discovered via mDNS service " + discovery.ServiceType,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	devices, err := discovery.Discover(discovery.DefaultBrowseTimeout)
	if err != nil {
		return err
	}

	// An empty network is a result, not an error
	if len(devices) == 0 {
		fmt.Println("No devices found.")
		return nil
	}

	for _, d := range devices {
		fmt.Println(ui.DeviceLine(d))
	}
	return nil
}

// pickCmd runs the interactive device picker and action menu
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive picker + action menu",
	RunE:  runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	devices, err := discoverOrFail()
	if err != nil {
		return err
	}

	device, err := pickDevice(devices)
	if err != nil {
		return err
	}
	fmt.Printf("Selected %s (ip=%s, rx_port=%d)\n", device.Name, device.IP, device.Port)

	fmt.Println("Actions:")
	fmt.Println("  1) bind to me")
	fmt.Println("  2) status")
	fmt.Println("  3) unbind")
	fmt.Println("  4) broadcast off")
	fmt.Println("  5) broadcast on")

	action, err := ui.PromptSelection(os.Stdin, os.Stdout, "Choose [1-5]: ", 5)
	if err != nil {
		return err
	}

	switch action {
	case 1:
		return runBindTo(device)
	case 2:
		return sendAndPrint(device, control.Status, "(no reply)")
	case 3:
		return sendAndPrint(device, control.Unbind, "OK (no reply)")
	case 4:
		return sendAndPrint(device, control.BroadcastOff, "OK (no reply)")
	case 5:
		return sendAndPrint(device, control.BroadcastOn, "OK (no reply)")
	}
	return nil
}

// bindCmd tells a device to unicast its log stream to this machine
var bindCmd = &cobra.Command{
	Use:   "bind <device>",
	Short: "Bind a device to unicast logs to your PC",
	Long: `Tell a device to send its log stream to this machine instead of
broadcasting it.

The device argument is the mDNS instance name (e.g. esp32-udp-logger-7A3F)
or the literal 'pick' for interactive selection. The local IP is detected
automatically unless --pc-ip is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBind,
}

func runBind(cmd *cobra.Command, args []string) error {
	device, err := resolveTarget(args[0])
	if err != nil {
		return err
	}
	return runBindTo(device)
}

func runBindTo(device *discovery.Device) error {
	ip := strings.TrimSpace(pcIP)
	if ip == "" {
		var err error
		ip, err = control.LocalIPForTarget(device.IP)
		if err != nil {
			return err
		}
	}
	return sendAndPrint(device, control.Bind(ip, txPort), "OK (no reply)")
}

var unbindCmd = &cobra.Command{
	Use:   "unbind <device>",
	Short: "Revert device to broadcast mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveAndSend(args[0], control.Unbind, "OK (no reply)")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <device>",
	Short: "Ask device status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveAndSend(args[0], control.Status, "(no reply)")
	},
}

var broadcastOnCmd = &cobra.Command{
	Use:   "broadcast-on <device>",
	Short: "Enable broadcast sending on device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveAndSend(args[0], control.BroadcastOn, "OK (no reply)")
	},
}

var broadcastOffCmd = &cobra.Command{
	Use:   "broadcast-off <device>",
	Short: "Disable broadcast sending on device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveAndSend(args[0], control.BroadcastOff, "OK (no reply)")
	},
}

// listenCmd prints the UDP log stream until interrupted
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen for UDP logs",
	RunE:  runListen,
}

func runListen(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Listening for UDP logs on 0.0.0.0:%d (Ctrl+C to stop)\n", listenPort)
	return logstream.Listen(ctx, listenPort, os.Stdout)
}

// discoverOrFail runs a discovery session and treats an empty network as a
// fatal, user-facing error
func discoverOrFail() ([]*discovery.Device, error) {
	devices, err := discovery.Discover(discovery.DefaultBrowseTimeout)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices found (mDNS blocked? device not advertising %s?)", discovery.ServiceType)
	}
	return devices, nil
}

// resolveTarget discovers devices and resolves the device argument: the
// literal "pick" selects interactively, anything else is matched by name
func resolveTarget(name string) (*discovery.Device, error) {
	devices, err := discoverOrFail()
	if err != nil {
		return nil, err
	}
	if name == "pick" {
		return pickDevice(devices)
	}
	return discovery.Find(devices, name)
}

// pickDevice shows the numbered device menu and reads a validated selection
func pickDevice(devices []*discovery.Device) (*discovery.Device, error) {
	if !ui.IsInteractive() {
		return nil, fmt.Errorf("interactive selection requires a terminal (use the device name instead)")
	}

	for i, d := range devices {
		fmt.Println(ui.MenuLine(i+1, d))
	}

	n, err := ui.PromptSelection(os.Stdin, os.Stdout,
		fmt.Sprintf("Select device [1-%d]: ", len(devices)), len(devices))
	if err != nil {
		return nil, err
	}
	return devices[n-1], nil
}

func resolveAndSend(name string, c control.Command, emptyReply string) error {
	device, err := resolveTarget(name)
	if err != nil {
		return err
	}
	return sendAndPrint(device, c, emptyReply)
}

// sendAndPrint performs one command exchange and prints the reply, or the
// given placeholder when the device stayed silent
func sendAndPrint(device *discovery.Device, c control.Command, emptyReply string) error {
	client := control.NewClient()
	reply, err := client.Send(device.IP, device.Port, c)
	if err != nil {
		return err
	}

	if reply == "" {
		fmt.Println(emptyReply)
		return nil
	}
	fmt.Println(ui.ReplyStyle.Render(reply))
	return nil
}
