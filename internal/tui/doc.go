// Package tui implements the interactive terminal interface for cliform.
//
// The interface is a Bubble Tea application with three screens coordinated by
// AppModel:
//
//   - Browser: navigate the introspected command tree and pick a leaf command
//   - Form: one input control per parameter, backed by a form.Form value map
//   - Log: streamed output of the running child process, with stop and clear
//
// Child-process output and completion arrive as Bubble Tea messages pumped
// from the execute.Runner's sink through a channel, so the event loop never
// blocks on the child. At most one command runs at a time; a second run
// request surfaces as a status line, not a second process.
package tui
