package execute

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// State is the runner's lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateStopped   State = "stopped"
	StateFailed    State = "failed"
)

// Stream identifies which output stream a chunk arrived on.
type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Sink receives output lines incrementally while the child runs.
type Sink func(stream Stream, line string)

// ExitCodeStopped is the sentinel exit code reported when the process was
// terminated by Stop or never produced a real exit code (launch failure).
const ExitCodeStopped = -1

// DefaultStopTimeout bounds how long Stop waits for the child to honor a
// termination signal before it is killed outright.
const DefaultStopTimeout = 5 * time.Second

// ErrAlreadyRunning is returned by Start while another invocation is in
// flight. The original invocation is unaffected.
var ErrAlreadyRunning = errors.New("a command is already running")

// Result is the final report of one invocation: terminal state, exit code,
// and the full captured output of both streams.
type Result struct {
	State    State
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts, streams, and stops the single tracked child process.
// Safe for concurrent use; the state record is guarded by a mutex and
// transitions are strictly ordered per invocation.
type Runner struct {
	mu     sync.Mutex
	state  State
	cancel context.CancelFunc

	sink        Sink
	logger      *zap.Logger
	execPath    string
	stopTimeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecPath overrides the binary the runner invokes. The default is the
// running executable itself, so the child re-enters this application.
func WithExecPath(path string) Option {
	return func(r *Runner) { r.execPath = path }
}

// WithStopTimeout overrides how long Stop waits before force-killing.
func WithStopTimeout(d time.Duration) Option {
	return func(r *Runner) { r.stopTimeout = d }
}

// NewRunner creates an idle runner. Output lines are delivered to sink; a nil
// sink discards them. logger may be nil for silent operation.
func NewRunner(sink Sink, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		state:       StateIdle,
		sink:        sink,
		logger:      logger,
		stopTimeout: DefaultStopTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Running reports whether an invocation is in flight.
func (r *Runner) Running() bool {
	return r.State() == StateRunning
}

// Start launches the child process with the given argument vector and begins
// streaming its output. It returns a channel that delivers exactly one Result
// when the invocation reaches a terminal state, after which the runner is
// IDLE again. ErrAlreadyRunning is returned (and nothing is spawned) if an
// invocation is already in flight.
func (r *Runner) Start(ctx context.Context, args []string) (<-chan Result, error) {
	r.mu.Lock()
	if r.state == StateRunning {
		r.mu.Unlock()
		return nil, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.state = StateRunning
	r.cancel = cancel
	r.mu.Unlock()

	done := make(chan Result, 1)
	go r.run(runCtx, args, done)
	return done, nil
}

// Stop requests termination of the in-flight child. The signal is advisory
// but forceful: the child gets a termination signal, and if it has not exited
// within the stop timeout it is killed. Stopping when idle is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning || r.cancel == nil {
		return
	}
	r.cancel()
}

func (r *Runner) run(ctx context.Context, args []string, done chan<- Result) {
	start := time.Now()

	execPath := r.execPath
	if execPath == "" {
		self, err := os.Executable()
		if err != nil {
			done <- r.finish(StateFailed, ExitCodeStopped, "", "cannot determine executable path: "+err.Error())
			return
		}
		execPath = self
	}

	cmd := exec.CommandContext(ctx, execPath, args...)
	// Ask nicely first; CommandContext's default is an immediate kill.
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.stopTimeout

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		done <- r.finish(StateFailed, ExitCodeStopped, "", "failed to open stdout pipe: "+err.Error())
		return
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		done <- r.finish(StateFailed, ExitCodeStopped, "", "failed to open stderr pipe: "+err.Error())
		return
	}

	r.logger.Info("starting command",
		zap.String("exec", execPath),
		zap.Strings("args", args),
	)

	if err := cmd.Start(); err != nil {
		done <- r.finish(StateFailed, ExitCodeStopped, "", "failed to start process: "+err.Error())
		return
	}

	// Drain both pipes concurrently, tee-ing into the buffers and the sink.
	// The pipes close when the process exits, so both readers finish before
	// Wait returns and no output is delivered after the terminal transition.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.drain(StreamStdout, stdoutPipe, &stdoutBuf)
	}()
	go func() {
		defer wg.Done()
		r.drain(StreamStderr, stderrPipe, &stderrBuf)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	stopped := ctx.Err() != nil

	state := StateCompleted
	exitCode := 0
	switch {
	case stopped:
		state = StateStopped
		exitCode = ExitCodeStopped
	case waitErr != nil:
		state = StateFailed
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = ExitCodeStopped
		}
	}

	r.logger.Info("command finished",
		zap.String("state", string(state)),
		zap.Int("exit_code", exitCode),
		zap.Duration("duration", time.Since(start)),
	)

	done <- r.finish(state, exitCode, stdoutBuf.String(), stderrBuf.String())
}

// finish records the terminal state, returns the runner to IDLE, and builds
// the final Result.
func (r *Runner) finish(state State, exitCode int, stdout, stderr string) Result {
	r.mu.Lock()
	r.state = StateIdle
	r.cancel = nil
	r.mu.Unlock()

	return Result{
		State:    state,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

func (r *Runner) drain(stream Stream, pipe io.Reader, buf *bytes.Buffer) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')
		r.emit(stream, line)
	}
}

// emit pushes one line to the sink. A panicking sink (detached client,
// torn-down UI) must not kill the invocation, so delivery failures are caught
// and logged instead of propagated.
func (r *Runner) emit(stream Stream, line string) {
	if r.sink == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("log sink unavailable, dropping output line",
				zap.Any("reason", rec),
				zap.String("stream", string(stream)),
			)
		}
	}()
	r.sink(stream, line)
}
