// Package server exposes the command tree and execution pipeline over HTTP,
// mirroring the interactive TUI for browser clients.
//
// The JSON API serves the introspected tree (/api/commands), individual nodes
// (/api/command?path=...), and run control (/api/run, /api/stop, /api/state).
// Execution output streams to all connected WebSocket clients on /ws as
// small JSON events. Client failures are local: a connection that cannot be
// written to is dropped and logged, and execution carries on regardless of
// whether anyone is still watching.
package server
