package editor

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/adforge/playable/internal/patch"
)

const (
	writeDeadline = 5 * time.Second
	// patchBacklog bounds queued patches between platform frames. Receipt
	// order is preserved; the channel is drained every frame.
	patchBacklog = 64
)

// subscriber is one connected editor client. Writes are serialized by a
// per-connection mutex and bounded by a deadline so a stalled connection
// fails fast instead of blocking writes.
type subscriber struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Server accepts editor websocket connections, decodes inbound envelopes
// into patch messages and fans outbound scene and tracking events to every
// connected client. Patches are surfaced on a channel the platform drains in
// receipt order.
type Server struct {
	template string
	logger   *log.Logger
	upgrader websocket.Upgrader

	httpSrv *http.Server

	mu          sync.Mutex
	subscribers map[string]*subscriber

	patches chan patch.Message
}

// NewServer creates an editor server for the given listen address.
func NewServer(addr, template string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "editor"})
	}
	s := &Server{
		template: template,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// The editor runs on an arbitrary local origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]*subscriber),
		patches:     make(chan patch.Message, patchBacklog),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Patches returns the inbound patch stream.
func (s *Server) Patches() <-chan patch.Message {
	return s.patches
}

// ListenAndServe blocks serving editor connections until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("editor endpoint listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown closes the listener and every client connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, sub := range s.subscribers {
		sub.conn.Close()
	}
	s.subscribers = make(map[string]*subscriber)
	s.mu.Unlock()
	return s.httpSrv.Shutdown(ctx)
}

// BroadcastSceneChanged notifies connected editors of a scene transition.
func (s *Server) BroadcastSceneChanged(sceneID string) {
	s.broadcast(envelope{Type: eventSceneChanged, Data: map[string]any{"scene": sceneID}})
}

// BroadcastTracking mirrors a fired tracking URL to connected editors, which
// show it in their debug panel.
func (s *Server) BroadcastTracking(eventKey, url string) {
	s.broadcast(envelope{Type: eventTracking, Data: map[string]any{
		"event": eventKey,
		"url":   url,
	}})
}

func (s *Server) broadcast(env envelope) {
	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if err := sub.writeJSON(env); err != nil {
			s.logger.Warn("editor write failed, dropping client", "client", sub.id, "err", err)
			s.drop(sub)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sub := &subscriber{id: uuid.NewString(), conn: conn}
	s.mu.Lock()
	s.subscribers[sub.id] = sub
	s.mu.Unlock()
	s.logger.Info("editor connected", "client", sub.id)

	if err := sub.writeJSON(envelope{Type: eventHello, Data: map[string]any{
		"template": s.template,
	}}); err != nil {
		s.drop(sub)
		return
	}

	go s.readLoop(sub)
}

// readLoop decodes inbound envelopes until the connection dies. Malformed
// frames log and drop; the connection stays up.
func (s *Server) readLoop(sub *subscriber) {
	defer s.drop(sub)
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			s.logger.Info("editor disconnected", "client", sub.id)
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			s.logger.Warn("malformed editor frame dropped", "client", sub.id, "err", err)
			if werr := sub.writeJSON(envelope{
				Type: eventError,
				Data: map[string]any{"error": "malformed frame"},
			}); werr != nil {
				return
			}
			continue
		}

		select {
		case s.patches <- env.asPatch():
		default:
			s.logger.Warn("patch backlog full, dropping", "kind", env.Type)
		}
	}
}

func (s *Server) drop(sub *subscriber) {
	s.mu.Lock()
	if _, ok := s.subscribers[sub.id]; ok {
		delete(s.subscribers, sub.id)
		sub.conn.Close()
	}
	s.mu.Unlock()
}
