package websocket

import (
	"log"
	"sort"
	"sync"
)

// Hub tracks live connections, which user each identified connection
// represents, and per-conversation room membership. All state is process
// local and dies with the process; nothing here is persisted.
type Hub struct {
	mu sync.RWMutex

	clients  map[string]*Client // connection id -> client
	userConn map[string]string  // user id -> connection id, last writer wins
	connUser map[string]string  // connection id -> user id

	rooms     map[string]map[string]bool // conversation id -> connection ids
	connRooms map[string]map[string]bool // connection id -> conversation ids
}

func NewHub() *Hub {
	return &Hub{
		clients:   map[string]*Client{},
		userConn:  map[string]string{},
		connUser:  map[string]string{},
		rooms:     map[string]map[string]bool{},
		connRooms: map[string]map[string]bool{},
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Identify binds a connection to a user. A user opening a second
// connection overwrites the first mapping; presence is last writer wins.
func (h *Hub) Identify(c *Client, userID string) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.userConn[userID]; ok && prev != c.ID {
		delete(h.connUser, prev)
	}
	c.UserID = userID
	h.userConn[userID] = c.ID
	h.connUser[c.ID] = userID
	log.Printf("Client identified: %s -> %s", c.ID, userID)
}

// RemoveClient drops a connection: its rooms, and its user mapping if it
// is still the one representing that user.
func (h *Hub) RemoveClient(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conv := range h.connRooms[connID] {
		delete(h.rooms[conv], connID)
		if len(h.rooms[conv]) == 0 {
			delete(h.rooms, conv)
		}
	}
	delete(h.connRooms, connID)

	if userID, ok := h.connUser[connID]; ok {
		delete(h.connUser, connID)
		if h.userConn[userID] == connID {
			delete(h.userConn, userID)
		}
	}
	delete(h.clients, connID)
}

// Join adds a connection to a conversation room. Idempotent.
func (h *Hub) Join(connID, conversationID string) {
	if conversationID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connID]; !ok {
		return
	}
	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = map[string]bool{}
	}
	h.rooms[conversationID][connID] = true

	if h.connRooms[connID] == nil {
		h.connRooms[connID] = map[string]bool{}
	}
	h.connRooms[connID][conversationID] = true
}

// Leave removes a connection from a room. Leaving a room not joined is a
// no-op.
func (h *Hub) Leave(connID, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.connRooms[connID]; ok {
		delete(s, conversationID)
		if len(s) == 0 {
			delete(h.connRooms, connID)
		}
	}
	if s, ok := h.rooms[conversationID]; ok {
		delete(s, connID)
		if len(s) == 0 {
			delete(h.rooms, conversationID)
		}
	}
}

// ActiveUsers returns the sorted ids of all identified users.
func (h *Hub) ActiveUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.userConn))
	for userID := range h.userConn {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}

// BroadcastActiveUsers sends the current presence snapshot to every
// connection, identified or not.
func (h *Hub) BroadcastActiveUsers() {
	event := ActiveUsersEvent{Event: EventActiveUsers, Users: h.ActiveUsers()}

	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.RUnlock()

	for _, c := range snapshot {
		if err := c.Conn.WriteJSON(event); err != nil {
			log.Printf("Error sending active users to %s: %v", c.ID, err)
		}
	}
}

// BroadcastToRoom fans an event out to every connection currently joined
// to the conversation. excludeConn skips one connection (typing events
// exclude their sender; message broadcasts exclude nobody).
func (h *Hub) BroadcastToRoom(conversationID string, event interface{}, excludeConn string) {
	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.rooms[conversationID]))
	for connID := range h.rooms[conversationID] {
		if connID == excludeConn {
			continue
		}
		if c, ok := h.clients[connID]; ok {
			snapshot = append(snapshot, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range snapshot {
		if err := c.Conn.WriteJSON(event); err != nil {
			log.Printf("Error sending to client %s in %s: %v", c.ID, conversationID, err)
		}
	}
}
