package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/latestcomment/livepoll/internal/models"
	"github.com/latestcomment/livepoll/internal/services"
)

type WebSocketHandler struct {
	Service *services.PollService
	Hub     *services.Hub
	log     *slog.Logger
}

func NewWebSocketHandler(service *services.PollService, hub *services.Hub, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{Service: service, Hub: hub, log: logger}
}

func (h *WebSocketHandler) WebSocketMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	client := h.Hub.Register(c)
	flushed := make(chan struct{})
	go func() {
		h.Hub.WritePump(client)
		close(flushed)
	}()
	defer func() {
		h.Service.Disconnect(client.Id)
		h.Hub.Unregister(client.Id)
		// The conn is recycled once this handler returns.
		<-flushed
		_ = c.Close()
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			break
		}
		h.Dispatch(client.Id, data)
	}
}

// Dispatch decodes one inbound frame and routes it to the poll service.
func (h *WebSocketHandler) Dispatch(connId string, data []byte) {
	var ev models.InboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		h.log.Debug("dropping undecodable frame", "conn", connId, "error", err)
		return
	}

	var err error
	switch ev.Type {
	case models.EventCreateSession:
		session := h.Service.CreateSession()
		h.Hub.Send(connId, models.Event{Type: models.EventSessionCreated, Data: models.SessionCreated{PollId: session.Id}})

	case models.EventPresenterInit:
		var p models.InitPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.PresenterJoin(connId, p.PollId)
		}

	case models.EventParticipantInit:
		var p models.InitPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.ParticipantJoin(connId, p.PollId, p.Name)
		}

	case models.EventAskQuestion:
		var p models.AskQuestionPayload
		if err = decode(ev.Data, &p); err == nil {
			h.reject(connId, h.Service.AskQuestion(connId, p))
		}

	case models.EventSubmitAnswer:
		var p models.SubmitAnswerPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.SubmitAnswer(connId, p)
		}

	case models.EventEndQuestion:
		var p models.PollPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.EndQuestion(connId, p.PollId)
		}

	case models.EventRemoveParticipant:
		var p models.RemoveParticipantPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.RemoveParticipant(connId, p.PollId, p.ParticipantId)
		}

	case models.EventChatSend:
		var p models.ChatPayload
		if err = decode(ev.Data, &p); err == nil {
			h.Service.Chat(connId, p)
		}

	default:
		h.log.Debug("dropping unknown event", "conn", connId, "type", ev.Type)
		return
	}

	if err != nil {
		h.log.Debug("dropping malformed payload", "conn", connId, "type", ev.Type, "error", err)
	}
}

// decode treats a missing payload as empty.
func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (h *WebSocketHandler) reject(connId string, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrPollNotFound),
		errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrQuestionInProgress):
		h.Hub.Send(connId, models.Event{Type: models.EventError, Data: err.Error()})
	default:
		h.log.Error("request failed", "conn", connId, "error", err)
	}
}
