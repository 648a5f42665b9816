// Package tui simulates the appliance in a terminal.
//
// A Bubble Tea program plays both keyboard and panel: key messages become
// editor actions on a Queue, and a cell Canvas renders the session's frames
// back into the program. The editing session runs on its own goroutine.
package tui
