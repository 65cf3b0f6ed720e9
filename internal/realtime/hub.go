// Package realtime fans out order and chat events to live subscribers
// grouped by room. It is a pure delivery layer over already-persisted facts:
// at-most-once, best-effort, no replay.
package realtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Room names. Per-order and per-customer rooms are derived, the admin room
// is a single shared channel.
const AdminRoom = "admin_room"

// OrderRoom names the per-order subscription room.
func OrderRoom(orderID uint) string {
	return fmt.Sprintf("order_%d", orderID)
}

// CustomerRoom names the per-customer subscription room.
func CustomerRoom(email string) string {
	return "customer_" + email
}

// Event is the wire shape of every server-originated notification.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const sendBuffer = 16

// Client is one live subscriber connection.
type Client struct {
	ID     uuid.UUID
	send   chan Event
	closed bool
}

// Events returns the channel the client's writer pump drains.
// The hub closes it on Unregister.
func (c *Client) Events() <-chan Event {
	return c.send
}

// Hub owns the room registry. Lifetime is process-wide: created at startup,
// torn down with the process.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
	}
}

// Register creates a new client and adds it to the connected set.
func (h *Hub) Register() *Client {
	c := &Client{ID: uuid.New(), send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	return c
}

// Unregister removes the client from every room and closes its event channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Join subscribes the client to a room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

// Leave unsubscribes the client from a room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast delivers an event to every subscriber of a room. If a room has
// no subscribers the event is dropped.
func (h *Hub) Broadcast(room, eventType string, payload interface{}) {
	ev := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		c.deliver(ev)
	}
}

// BroadcastAll delivers an event to every connected client, room or not.
func (h *Hub) BroadcastAll(eventType string, payload interface{}) {
	ev := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.deliver(ev)
	}
}

// RoomSize reports the number of subscribers in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// deliver is non-blocking: a slow subscriber loses the event rather than
// stalling the request that emitted it. Callers hold at least a read lock,
// so delivery cannot race the close in Unregister.
func (c *Client) deliver(ev Event) {
	select {
	case c.send <- ev:
	default:
	}
}
