// Package ui provides theme and color support for the application's user
// interface: ANSI escape codes for the CLI and lipgloss colors for the TUI.
//
// This package is a shared dependency for packages that need color output,
// reducing coupling between business logic and presentation.
package ui
