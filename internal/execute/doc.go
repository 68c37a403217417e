// Package execute owns the one child process the interface is allowed to have
// in flight at a time.
//
// A Runner moves through IDLE -> RUNNING -> (COMPLETED | STOPPED | FAILED) and
// back to IDLE. Starting while RUNNING is rejected without spawning anything.
// The child is the interface's own binary re-invoked with the built argument
// vector, so the invoked command parses and validates its input exactly as it
// would from a shell.
//
// Output is streamed line by line to a Sink as it arrives, in arrival order,
// and stdout and stderr are each accumulated in full for the final Result.
// Child outcomes are always reported as data: a nonzero exit is a FAILED
// result with the captured code, never an error from this package. A sink
// that panics (a detached UI client, say) is caught and downgraded to log
// output rather than taking down the invocation.
package execute
