package realtime

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Server upgrades authenticated HTTP requests to websocket clients. It
// runs on its own listener next to the REST API.
type Server struct {
	hub      *Hub
	tokens   *auth.TokenManager
	logger   *zap.Logger
	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer builds the websocket server for the given hub.
func NewServer(cfg config.RealtimeConfig, hub *Hub, tokens *auth.TokenManager, logger *zap.Logger) *Server {
	s := &Server{
		hub:    hub,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, s.handleConnect)
	s.srv = &http.Server{Addr: cfg.Addr(), Handler: mux}
	return s
}

// ListenAndServe blocks serving websocket connections.
func (s *Server) ListenAndServe() error {
	s.logger.Info("realtime listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleConnect authenticates the handshake with the bearer access token
// and registers the client. The credential presented at connect time is
// the one the session lives on; a refreshed token requires a new dial.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	token, err := auth.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Role: claims.Role,
		Send: make(chan []byte, 32),
	}
	if claims.Role == domain.RoleGuest {
		client.GuestID = claims.Subject
	}
	s.hub.Register(client)
	s.logger.Info("realtime client connected",
		zap.String("client", client.ID),
		zap.String("role", string(claims.Role)))

	go s.writeLoop(client, conn)
	go s.readLoop(client, conn)
}

func (s *Server) writeLoop(client *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains inbound frames to detect disconnects; the channel is
// push-only, so incoming payloads are discarded.
func (s *Server) readLoop(client *Client, conn *websocket.Conn) {
	defer func() {
		s.hub.Unregister(client)
		_ = conn.Close()
		s.logger.Info("realtime client disconnected", zap.String("client", client.ID))
	}()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
