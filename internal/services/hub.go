package services

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/latestcomment/livepoll/internal/metrics"
	"github.com/latestcomment/livepoll/internal/models"
)

// Hub tracks live websocket clients and the sessions they are subscribed to.
// Writes are queued per client and flushed by WritePump, so Send and
// Broadcast never block.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*models.Client
	rooms   map[string]map[string]struct{}

	sendBuffer int
	log        *slog.Logger
}

func NewHub(sendBuffer int, logger *slog.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]*models.Client),
		rooms:      make(map[string]map[string]struct{}),
		sendBuffer: sendBuffer,
		log:        logger,
	}
}

// Register assigns a fresh connection id to conn.
func (h *Hub) Register(conn *websocket.Conn) *models.Client {
	client := &models.Client{
		Id:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[client.Id] = client
	h.mu.Unlock()

	metrics.Connections.Inc()
	h.log.Debug("client connected", "conn", client.Id)
	return client
}

// Unregister drops the client from every room and closes its send queue.
func (h *Hub) Unregister(connId string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connId]
	if !ok {
		return
	}
	delete(h.clients, connId)
	for sessionId, members := range h.rooms {
		delete(members, connId)
		if len(members) == 0 {
			delete(h.rooms, sessionId)
		}
	}
	close(client.Send)

	metrics.Connections.Dec()
	h.log.Debug("client disconnected", "conn", connId)
}

// writeWait bounds a single frame write to a slow or stalled peer.
const writeWait = 10 * time.Second

type frameWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
}

// WritePump flushes the client's queue to its socket until Unregister closes it.
func (h *Hub) WritePump(client *models.Client) {
	h.writeLoop(client.Id, client.Conn, client.Send)
}

func (h *Hub) writeLoop(connId string, w frameWriter, send <-chan []byte) {
	for data := range send {
		if err := w.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.log.Debug("set write deadline failed", "conn", connId, "error", err)
			continue
		}
		if err := w.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("write failed", "conn", connId, "error", err)
			// Keep draining so Unregister's close ends the loop.
			continue
		}
	}
}

func (h *Hub) Subscribe(connId, sessionId string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connId]; !ok {
		return
	}
	members, ok := h.rooms[sessionId]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[sessionId] = members
	}
	members[connId] = struct{}{}
}

func (h *Hub) Unsubscribe(connId, sessionId string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[sessionId]; ok {
		delete(members, connId)
		if len(members) == 0 {
			delete(h.rooms, sessionId)
		}
	}
}

func (h *Hub) Connected(connId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connId]
	return ok
}

func (h *Hub) Send(connId string, ev models.Event) {
	data, ok := h.encode(ev)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[connId]; ok {
		h.enqueue(client, data)
	}
}

func (h *Hub) Broadcast(sessionId string, ev models.Event) {
	data, ok := h.encode(ev)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for connId := range h.rooms[sessionId] {
		if client, ok := h.clients[connId]; ok {
			h.enqueue(client, data)
		}
	}
}

func (h *Hub) encode(ev models.Event) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("failed to encode event", "type", ev.Type, "error", err)
		return nil, false
	}
	return data, true
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(client *models.Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		metrics.FramesDropped.Inc()
		h.log.Warn("send buffer full, dropping frame", "conn", client.Id)
	}
}

// members returns the connection ids subscribed to a session.
func (h *Hub) members(sessionId string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.rooms[sessionId]))
	for id := range h.rooms[sessionId] {
		out = append(out, id)
	}
	return out
}
