package websocket

import (
	"sync"

	"SecretSanta/internal/utils"
)

type HubInterface interface {
	SendToParticipant(groupID, name string, msg OutgoingMessage)
	BroadcastToGroup(groupID string, msg OutgoingMessage)
	ClientByKey(groupID, name string) (*Client, bool)
	Close()
}

// Hub 按 groupID/name 维护连接，一个参与者同时只保留一条连接
type Hub struct {
	clients    map[string]*Client // key -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	quit       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
}

type broadcastReq struct {
	GroupID string
	Message OutgoingMessage
}

type sendReq struct {
	Key     string
	Message OutgoingMessage
}

// Key 连接标识
func Key(groupID, name string) string {
	return groupID + "/" + name
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Log.Info("hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			key := c.Key()
			if old, ok := h.clients[key]; ok && old != c {
				close(old.Send)
			}
			h.clients[key] = c
			utils.Log.Debug("hub register", "client", key, "connections", len(h.clients))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			key := c.Key()
			if cur, ok := h.clients[key]; ok && cur == c {
				delete(h.clients, key)
				close(c.Send)
				utils.Log.Debug("hub unregister", "client", key, "connections", len(h.clients))
			}
			h.mu.Unlock()

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				if c.GroupID == req.GroupID {
					deliver(c, req.Message)
				}
			}
			h.mu.RUnlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			if c, ok := h.clients[req.Key]; ok {
				deliver(c, req.Message)
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for key, c := range h.clients {
				close(c.Send)
				delete(h.clients, key)
			}
			h.mu.Unlock()
			utils.Log.Info("hub stopped")
			return
		}
	}
}

// deliver 不阻塞 hub：慢连接直接丢弃消息
func deliver(c *Client, msg OutgoingMessage) {
	select {
	case c.Send <- msg:
	default:
		utils.Log.Warn("dropping message for slow client", "client", c.Key(), "event", msg.Event)
	}
}

// SendToParticipant 只发给一个参与者
func (h *Hub) SendToParticipant(groupID, name string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{Key: Key(groupID, name), Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) BroadcastToGroup(groupID string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{GroupID: groupID, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) ClientByKey(groupID, name string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[Key(groupID, name)]
	return c, ok
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
