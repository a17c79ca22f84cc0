package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/udplog/internal/discovery"
)

// Color palette shared by the interactive commands
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - device names
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success output
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
)

var (
	// DeviceNameStyle highlights device instance names
	DeviceNameStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)

	// MutedStyle renders secondary details (addresses, ports)
	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	// ReplyStyle renders device reply text
	ReplyStyle = lipgloss.NewStyle().Foreground(SuccessColor)
)

// DeviceLine formats one device for the list command
func DeviceLine(d *discovery.Device) string {
	return fmt.Sprintf("%s\t%s",
		DeviceNameStyle.Render(d.Name),
		MutedStyle.Render(fmt.Sprintf("ip=%s\trx_port=%d", d.IP, d.Port)),
	)
}

// MenuLine formats one numbered device row for the interactive picker
func MenuLine(n int, d *discovery.Device) string {
	return fmt.Sprintf("%2d) %s  %s",
		n,
		DeviceNameStyle.Render(fmt.Sprintf("%-24s", d.Name)),
		MutedStyle.Render(fmt.Sprintf("ip=%-15s  rx_port=%d", d.IP, d.Port)),
	)
}
