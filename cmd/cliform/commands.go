package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwheeler/cliform/internal/announce"
	"github.com/mwheeler/cliform/internal/config"
	"github.com/mwheeler/cliform/internal/introspect"
	"github.com/mwheeler/cliform/internal/logging"
	"github.com/mwheeler/cliform/internal/server"
	"github.com/mwheeler/cliform/internal/tui"
)

// Interface command flags
var (
	serveHost     string
	servePort     int
	serveAnnounce bool
)

func init() {
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(serveCmd)
}

// uiCmd launches the interactive terminal interface
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive terminal interface",
	Long: `Launch the form-based terminal interface.

The interface lists every command of this application, renders a form for
the selected command's parameters, and executes the rebuilt command line
as a child process with streamed output.`,
	Example: `  # Launch the interface
  cliform ui
  # Or simply (the interface is the default):
  cliform`,
	Annotations: map[string]string{introspect.SkipAnnotation: "true"},
	RunE:        runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	prefs, err := config.Global()
	if err != nil {
		logging.Warn("using default preferences: " + err.Error())
	}

	intr := introspect.New(cmd.Root())
	return tui.Run(intr, prefs)
}

// serveCmd exposes the interface to browsers on the local network
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interface over HTTP",
	Long: `Serve the form-based interface as a web page.

The command tree is exposed as a JSON API, command execution is controlled
over HTTP, and child-process output streams to the page over a WebSocket.
With --announce the endpoint is registered via mDNS so browsers on the
local network can discover it.`,
	Example: `  # Serve on the default endpoint (localhost:8080)
  cliform serve

  # Serve on all interfaces and announce via mDNS
  cliform serve --host 0.0.0.0 --port 9000 --announce`,
	Annotations: map[string]string{introspect.SkipAnnotation: "true"},
	RunE:        runServe,
}

func init() {
	prefs, _ := config.Global()
	serveCmd.Flags().StringVar(&serveHost, "host", prefs.Serve.Host, "Address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", prefs.Serve.Port, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveAnnounce, "announce", prefs.Serve.Announce, "Announce the endpoint via mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	prefs, _ := config.Global()

	srv, err := server.New(&server.Config{
		Host:        serveHost,
		Port:        servePort,
		LogLevel:    prefs.LogLevel,
		StopTimeout: time.Duration(prefs.StopTimeoutSeconds) * time.Second,
	}, introspect.New(cmd.Root()))
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if serveAnnounce {
		if _, err := announce.Start(ctx, servePort); err != nil {
			// Best effort: a filtered network is not a reason to refuse to serve.
			logging.Warn("mDNS announcement failed: " + err.Error())
		}
	}

	fmt.Printf("Serving cliform on http://%s\n", srv.Addr())
	return srv.Run(ctx)
}
