// Package tui renders docent conversations in a terminal.
package tui
