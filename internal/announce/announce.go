// Package announce registers the cliform web endpoint on the local network
// via mDNS/DNS-SD, so the page can be found without knowing the host's
// address. Registration is best-effort: a network that filters multicast
// simply leaves the endpoint unannounced.
package announce

import (
	"context"
	"fmt"
	"sync"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/mwheeler/cliform/internal/logging"
	"github.com/mwheeler/cliform/internal/version"
)

const (
	// ServiceType advertises the web UI as a plain HTTP service.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	instanceName = "cliform"
)

// Announcer holds an active mDNS registration. Shutdown may be invoked from
// both the context watcher and the owner; the registration is released once.
type Announcer struct {
	mu     sync.Mutex
	server *zeroconf.Server
}

// Start registers the service on the given port and keeps the registration
// alive until Shutdown or context cancellation.
func Start(ctx context.Context, port int) (*Announcer, error) {
	srv, err := zeroconf.Register(
		instanceName,
		ServiceType,
		ServiceDomain,
		port,
		[]string{"app=cliform", "version=" + version.Version},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("announced service via mDNS",
		zap.String("instance", instanceName),
		zap.String("type", ServiceType),
		zap.Int("port", port),
	)

	a := &Announcer{server: srv}
	go func() {
		<-ctx.Done()
		a.Shutdown()
	}()
	return a, nil
}

// Shutdown withdraws the mDNS registration.
func (a *Announcer) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
