// Package live pushes the latest reading of a station to websocket subscribers.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

const (
	sendBuffer   = 16
	readLimit    = 4096
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Connection is one subscriber of a station feed.
type Connection struct {
	id           string
	stationID    models.ID
	locale       locale.Locale
	ws           *websocket.Conn
	send         chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	logger       *zap.Logger
	writeTimeout time.Duration
	onClose      func(*Connection)
}

// NewConnection builds connection wrapper.
func NewConnection(id string, stationID models.ID, loc locale.Locale, ws *websocket.Conn, writeTimeout time.Duration, logger *zap.Logger, onClose func(*Connection)) *Connection {
	return &Connection{
		id:           id,
		stationID:    stationID,
		locale:       loc,
		ws:           ws,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		logger:       logger.With(zap.String("connection_id", id), zap.String("station_id", stationID.String())),
		writeTimeout: writeTimeout,
		onClose:      onClose,
	}
}

// ID returns the connection identifier.
func (c *Connection) ID() string { return c.id }

// StationID returns the subscribed station.
func (c *Connection) StationID() models.ID { return c.stationID }

// Locale returns the language updates are labelled in.
func (c *Connection) Locale() locale.Locale { return c.locale }

// Start launches the write pump and blocks in the read pump until the peer goes away.
func (c *Connection) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump only watches for close frames and pongs; subscribers never send data.
func (c *Connection) readPump(ctx context.Context) {
	defer c.Close()
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, _, err := c.ws.ReadMessage(); err != nil {
			c.logger.Info("live connection read closed", zap.Error(err))
			return
		}
	}
}

func (c *Connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case <-c.done:
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Send enqueues a message. It never blocks; messages to a slow or closed peer are dropped.
func (c *Connection) Send(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.logger.Warn("dropping live update, buffer full")
		return false
	}
}

// Close stops both pumps and releases the socket. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		// let the write pump flush the close frame before the socket goes away
		time.AfterFunc(c.writeTimeout, func() { _ = c.ws.Close() })
		if c.onClose != nil {
			c.onClose(c)
		}
	})
}

func (c *Connection) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}
