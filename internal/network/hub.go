// Package network exposes the simulation's snapshot/command boundary to
// display clients over WebSocket. The display itself lives elsewhere;
// this package only speaks its wire protocol.
package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bugworks/bugbattle/internal/engine"
	"github.com/bugworks/bugbattle/internal/platform/logger"
)

// snapshotPollInterval paces the hub's reads from the simulation link.
// The link coalesces to the latest frame, so slower polling only lowers
// the display frame rate, never backs up the simulation.
const snapshotPollInterval = 100 * time.Millisecond

// Hub maintains the set of active display clients and broadcasts
// snapshots to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	link       *engine.Link
	logger     *logger.Logger
}

// NewHub initializes a hub bridging the given simulation link.
func NewHub(link *engine.Link, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		link:       link,
		logger:     log,
	}
}

// Run starts the hub's main loop handling client connections and
// broadcasts. Call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("websocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("display client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("display client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// StartSnapshotPoller spawns a goroutine that drains the simulation link
// and pushes the latest snapshot to all connected clients.
func (h *Hub) StartSnapshotPoller(ctx context.Context) {
	go func() {
		poll := time.NewTicker(snapshotPollInterval)
		defer poll.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-poll.C:
				snap, ok := h.link.Latest()
				if !ok {
					continue
				}
				h.broadcastSnapshot(snap)
			}
		}
	}()
}

func (h *Hub) broadcastSnapshot(snap engine.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("failed to serialize snapshot for broadcast", "error", err)
		return
	}
	h.broadcast <- payload
}

// sendCommand forwards a parsed display command to the simulation.
func (h *Hub) sendCommand(cmd engine.Command) {
	if !h.link.Send(cmd) {
		h.logger.Warn("command queue full, dropping display command")
	}
}
