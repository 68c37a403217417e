package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mwheeler/cliform/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
)

// Event types streamed to WebSocket clients.
const (
	EventOutput = "output" // one line of child output
	EventState  = "state"  // a lifecycle transition (running)
	EventResult = "result" // terminal state with aggregates
)

// Event is one message on the execution stream.
type Event struct {
	Type     string   `json:"type"`
	Stream   string   `json:"stream,omitempty"`
	Line     string   `json:"line,omitempty"`
	State    string   `json:"state,omitempty"`
	Argv     []string `json:"argv,omitempty"`
	ExitCode int      `json:"exit_code,omitempty"`
	Stdout   string   `json:"stdout,omitempty"`
	Stderr   string   `json:"stderr,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The page is served from this same process; cross-origin embedding of
	// a local command runner is not a supported setup.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub tracks connected WebSocket clients and fans events out to them.
// A client that cannot be written to is dropped locally; delivery failures
// never propagate to the execution pipeline.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// broadcast sends an event to every connected client. Writes happen under the
// lock so event order is identical for all clients.
func (h *hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			logging.Warn("dropping unreachable client",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// handleWebSocket upgrades the connection and keeps it registered until the
// client goes away. Clients never send application data; the read loop exists
// to notice the close.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	remote := conn.RemoteAddr().String()
	logging.LogClientEvent(remote, "connected")
	s.hub.add(conn)

	go func() {
		defer func() {
			s.hub.remove(conn)
			_ = conn.Close()
			logging.LogClientEvent(remote, "disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
