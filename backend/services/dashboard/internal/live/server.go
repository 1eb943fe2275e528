package live

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

const defaultWriteTimeout = 10 * time.Second

// Server upgrades HTTP requests to live feed websockets.
type Server struct {
	hub          *Hub
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server. checkOrigin nil accepts every origin.
func NewServer(hub *Hub, writeTimeout time.Duration, checkOrigin func(*http.Request) bool, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Server{
		hub:          hub,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Serve upgrades the request and subscribes it to the station feed. Unknown stations get
// a 404 before the upgrade.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, stationID models.ID, loc locale.Locale) {
	if !s.hub.source.HasStation(r.Context(), stationID) {
		http.Error(w, "station not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(uuid.NewString(), stationID, loc, conn, s.writeTimeout, s.logger, func(c *Connection) {
		s.hub.Remove(c)
		cancel()
	})
	s.hub.Add(connection)
	s.hub.Push(ctx, connection)

	go connection.Start(ctx)
	s.logger.Info("live subscriber connected", zap.String("station_id", stationID.String()), zap.String("locale", loc.Code()))
}
