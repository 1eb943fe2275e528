package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
	"emfmonitor/backend/services/dashboard/internal/service"
)

const defaultInterval = 30 * time.Second

// Source supplies the latest marker of a station.
type Source interface {
	HasStation(ctx context.Context, id models.ID) bool
	LatestMarker(ctx context.Context, id models.ID, now time.Time, loc locale.Locale) (service.Marker, bool)
}

// Update is the message pushed to subscribers.
type Update struct {
	Type      string         `json:"type"`
	StationID models.ID      `json:"stationId"`
	Marker    service.Marker `json:"marker"`
	SentAt    time.Time      `json:"sentAt"`
}

const updateType = "reading"

// Hub tracks live connections per station and refreshes them on an interval.
type Hub struct {
	mu       sync.RWMutex
	stations map[models.ID]map[string]*Connection

	source   Source
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewHub builds hub.
func NewHub(source Source, interval time.Duration, logger *zap.Logger, m *metrics.Metrics) *Hub {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Hub{
		stations: make(map[models.ID]map[string]*Connection),
		source:   source,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		metrics:  m,
	}
}

// Add registers a connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.stations[conn.StationID()]
	if !ok {
		conns = make(map[string]*Connection)
		h.stations[conn.StationID()] = conns
	}
	conns[conn.ID()] = conn
	if h.metrics != nil {
		h.metrics.LiveConnections.Inc()
	}
}

// Remove unregisters a connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.stations[conn.StationID()]
	if !ok {
		return
	}
	if _, ok := conns[conn.ID()]; !ok {
		return
	}
	delete(conns, conn.ID())
	if len(conns) == 0 {
		delete(h.stations, conn.StationID())
	}
	if h.metrics != nil {
		h.metrics.LiveConnections.Dec()
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.stations {
		n += len(conns)
	}
	return n
}

// Start pushes updates every interval until ctx ends, then closes every connection.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(ctx)
		}
	}
}

// Push sends the current marker to a single connection.
func (h *Hub) Push(ctx context.Context, conn *Connection) {
	if msg, ok := h.render(ctx, conn.StationID(), conn.Locale()); ok {
		conn.Send(msg)
	}
}

func (h *Hub) broadcast(ctx context.Context) {
	for stationID, conns := range h.snapshot() {
		rendered := make(map[string][]byte)
		for _, conn := range conns {
			code := conn.Locale().Code()
			msg, ok := rendered[code]
			if !ok {
				if msg, ok = h.render(ctx, stationID, conn.Locale()); !ok {
					break
				}
				rendered[code] = msg
			}
			conn.Send(msg)
		}
	}
}

func (h *Hub) render(ctx context.Context, stationID models.ID, loc locale.Locale) ([]byte, bool) {
	now := h.now().UTC()
	marker, ok := h.source.LatestMarker(ctx, stationID, now, loc)
	if !ok {
		h.logger.Debug("no live reading", zap.String("station_id", stationID.String()))
		return nil, false
	}
	msg, err := json.Marshal(Update{Type: updateType, StationID: stationID, Marker: marker, SentAt: now})
	if err != nil {
		h.logger.Warn("encode live update failed", zap.Error(err))
		return nil, false
	}
	return msg, true
}

func (h *Hub) snapshot() map[models.ID][]*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[models.ID][]*Connection, len(h.stations))
	for id, conns := range h.stations {
		list := make([]*Connection, 0, len(conns))
		for _, c := range conns {
			list = append(list, c)
		}
		out[id] = list
	}
	return out
}

func (h *Hub) closeAll() {
	for _, conns := range h.snapshot() {
		for _, c := range conns {
			c.Close()
		}
	}
}
