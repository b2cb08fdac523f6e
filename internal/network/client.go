package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bugworks/bugbattle/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Displays may be served from anywhere on the LAN.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client represents one connected display.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// DisplayCommand is the inbound wire shape from a display.
type DisplayCommand struct {
	Type       string   `json:"type"` // "start", "pause", "set_interval", "reset"
	IntervalMS int      `json:"interval_ms"`
	Species    []string `json:"species"`
}

// ServeWs upgrades an HTTP request to a display connection and starts its
// pumps.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps display commands from the connection to the simulation.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("unexpected websocket close", "error", err)
			}
			return
		}

		var dc DisplayCommand
		if err := json.Unmarshal(message, &dc); err != nil {
			c.hub.logger.Error("failed to parse display command", "error", err)
			continue
		}
		c.handleCommand(dc)
	}
}

func (c *Client) handleCommand(dc DisplayCommand) {
	switch dc.Type {
	case "start":
		c.hub.sendCommand(engine.StartCommand{})
	case "pause":
		c.hub.sendCommand(engine.PauseCommand{})
	case "set_interval":
		c.hub.sendCommand(engine.SetIntervalCommand{
			Interval: time.Duration(dc.IntervalMS) * time.Millisecond,
		})
	case "reset":
		c.hub.sendCommand(engine.ResetCommand{
			Species:  dc.Species,
			Interval: time.Duration(dc.IntervalMS) * time.Millisecond,
		})
	default:
		c.hub.logger.Warn("unknown display command", "type", dc.Type)
	}
}

// writePump pumps broadcast snapshots from the hub to the connection.
func (c *Client) writePump() {
	pinger := time.NewTicker(pingPeriod)
	defer func() {
		pinger.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-pinger.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
