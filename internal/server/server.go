package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mwheeler/cliform/internal/argv"
	"github.com/mwheeler/cliform/internal/execute"
	"github.com/mwheeler/cliform/internal/introspect"
	"github.com/mwheeler/cliform/internal/logging"
)

// Config holds the server configuration
type Config struct {
	Host        string
	Port        int
	LogLevel    string
	StopTimeout time.Duration
}

// Server serves the command tree and execution pipeline over HTTP.
type Server struct {
	config *Config
	intr   *introspect.Introspector
	runner *execute.Runner
	hub    *hub
	http   *http.Server
}

// runRequest is the body of POST /api/run.
type runRequest struct {
	Path   string         `json:"path"`
	Values map[string]any `json:"values"`
}

// New creates a server over an introspected command tree.
func New(config *Config, intr *introspect.Introspector) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	h := newHub()
	sink := func(stream execute.Stream, line string) {
		h.broadcast(Event{Type: EventOutput, Stream: string(stream), Line: line})
	}

	var opts []execute.Option
	if config.StopTimeout > 0 {
		opts = append(opts, execute.WithStopTimeout(config.StopTimeout))
	}

	s := &Server{
		config: config,
		intr:   intr,
		runner: execute.NewRunner(sink, logging.GetLogger(), opts...),
		hub:    h,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/commands", s.handleCommands)
	mux.HandleFunc("GET /api/command", s.handleCommand)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/run", s.handleRun)
	mux.HandleFunc("POST /api/stop", s.handleStop)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	s.http = &http.Server{
		Addr:              net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr returns the address the server binds to.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully, stopping any in-flight child process first.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	s.runner.Stop()
	s.hub.closeAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.intr.Commands())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	node, ok := s.intr.Lookup(path)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown command: "+path)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"state": string(s.runner.State())})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	node, ok := s.intr.Lookup(req.Path)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown command: "+req.Path)
		return
	}
	if node.Group {
		writeError(w, http.StatusBadRequest, "not an executable command: "+req.Path)
		return
	}

	args := argv.Build(node, req.Values)
	done, err := s.runner.Start(context.Background(), args)
	if err != nil {
		// Single-flight: report, spawn nothing.
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	logging.LogInvocation(node.Path, args)
	s.hub.broadcast(Event{Type: EventState, State: string(execute.StateRunning), Argv: args})

	go func() {
		res := <-done
		s.hub.broadcast(Event{
			Type:     EventResult,
			State:    string(res.State),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		})
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{"argv": args})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.runner.Stop()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(s.runner.State())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
