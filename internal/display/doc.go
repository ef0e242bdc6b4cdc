// Package display formats user-facing warnings for the ctxpack CLI.
//
// Warnings are rendered as an indented block in yellow:
//
//	warning := display.WarnSkippedFiles([]string{"/repo/logo.png"})
//	warning.Display(os.Stdout)
//
// All functions accept io.Writer interfaces for testability. Colors come from
// fatih/color and are disabled when the process is not attached to a terminal
// or NO_COLOR is set.
package display
