package ws

import (
	"encoding/json"
	"sync"
)

// Client is one console connection on the event stream.
type Client struct {
	OperatorID uint
	Role       string
	Send       chan []byte
	hub        *Hub
	mu         sync.Mutex
	closed     bool
}

func NewClient(operatorID uint, role string, buffer int) *Client {
	return &Client{OperatorID: operatorID, Role: role, Send: make(chan []byte, buffer)}
}

// Close unregisters the client and closes Send. Safe to call twice.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	close(c.Send)
}

// Hub fans events out to every connected console.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	byOperator map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byOperator: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
	if h.byOperator[c.OperatorID] == nil {
		h.byOperator[c.OperatorID] = make(map[*Client]struct{})
	}
	h.byOperator[c.OperatorID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byOperator[c.OperatorID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byOperator, c.OperatorID)
		}
	}
}

// BroadcastAll sends payload to every client. Slow clients drop messages
// rather than block the sender.
func (h *Hub) BroadcastAll(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.deliver(data)
	}
}

func (h *Hub) BroadcastToOperator(operatorID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.byOperator[operatorID]))
	for c := range h.byOperator[operatorID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.deliver(data)
	}
}

func (c *Client) deliver(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
