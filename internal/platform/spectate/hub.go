// Package spectate streams session snapshots to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/echo-isles/internal/session"
)

// ProtocolVersion is sent with every frame.
const ProtocolVersion = 1

const (
	writeWait  = 2 * time.Second
	sendBuffer = 8
)

// frame is the JSON envelope written to viewers.
type frame struct {
	Ver  int              `json:"ver"`
	Type string           `json:"type"`
	Data session.Snapshot `json:"data"`
}

type viewer struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to connected viewers. Viewers never send anything
// the game reads; slow viewers drop frames instead of stalling the game.
type Hub struct {
	mu       sync.Mutex
	viewers  map[string]*viewer
	last     []byte
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		viewers: make(map[string]*viewer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Publish encodes a snapshot and queues it for every viewer.
func (h *Hub) Publish(snap session.Snapshot) {
	data, err := json.Marshal(frame{Ver: ProtocolVersion, Type: "snapshot", Data: snap})
	if err != nil {
		h.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for _, v := range h.viewers {
		select {
		case v.send <- data:
		default:
			// viewer is behind; it catches up on the next frame
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// ServeHTTP upgrades the request and streams snapshots until the viewer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	v := &viewer{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.viewers[v.id] = v
	if h.last != nil {
		v.send <- h.last
	}
	h.mu.Unlock()
	h.logger.Info("viewer joined", "id", v.id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go h.writeLoop(v, done)

	// Drain reads so close frames are processed; content is ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.viewers, v.id)
	h.mu.Unlock()
	close(done)
	conn.Close()
	h.logger.Info("viewer left", "id", v.id)
}

func (h *Hub) writeLoop(v *viewer, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case data := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				v.conn.Close()
				return
			}
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.viewers {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "game over")
		v.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		v.conn.Close()
	}
}

// Server serves a hub on an HTTP address.
type Server struct {
	hub    *Hub
	srv    *http.Server
	logger *log.Logger
}

// NewServer mounts the hub at /spectate on addr.
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/spectate", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"viewers": hub.Viewers()})
	})
	return &Server{
		hub:    hub,
		srv:    &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
}

// Start listens in the background.
func (s *Server) Start() {
	go func() {
		s.logger.Info("spectator feed listening", "address", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("spectator server error", "error", err)
		}
	}()
}

// Shutdown disconnects viewers and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
