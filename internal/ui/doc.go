// Package ui provides terminal prompts and shared lipgloss styles for the
// interactive udplog-ctl commands.
package ui
