package services

import (
	"github.com/google/uuid"
	"github.com/latestcomment/livepoll/internal/models"
)

// Chat relays a message to everyone in the session. Messages are not kept.
func (s *PollService) Chat(connId string, p models.ChatPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session *models.Session
	if p.PollId != "" {
		session = s.Registry.Get(p.PollId)
	} else {
		session = s.Registry.FindByParticipant(connId)
	}
	if session == nil {
		return
	}

	msg := models.ChatMessage{
		Id:      uuid.NewString(),
		At:      s.now().UnixMilli(),
		From:    models.Truncate(p.From, models.MaxNameLen),
		Role:    models.ParseChatRole(p.Role),
		Message: models.Truncate(p.Message, models.MaxChatBodyLen),
	}
	s.gateway.Broadcast(session.Id, models.Event{Type: models.EventChatMessage, Data: msg})
}
