package services

import (
	"github.com/latestcomment/livepoll/internal/metrics"
	"github.com/latestcomment/livepoll/internal/models"
)

func (s *PollService) CreateSession() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSession()
}

func (s *PollService) createSession() *models.Session {
	session := s.Registry.Create()
	metrics.SessionsCreated.Inc()
	s.log.Info("session created", "session", session.Id)
	return session
}

// PresenterJoin binds connId as the presenter of pollId, creating the session
// when pollId is empty or unknown, then admits every queued participant.
func (s *PollService) PresenterJoin(connId, pollId string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(pollId)
	if session == nil {
		session = s.createSession()
	}
	session.PresenterConnectionId = connId
	s.Registry.BindPresenter(session)
	s.gateway.Subscribe(connId, session.Id)
	s.gateway.Send(connId, models.Event{Type: models.EventPresenterReady, Data: presenterSnapshot(session)})
	s.log.Info("presenter joined", "session", session.Id, "conn", connId)

	s.drainPending(session)
	return session
}

func (s *PollService) drainPending(session *models.Session) {
	pending := s.pending
	s.pending = nil
	for _, p := range pending {
		if !s.gateway.Connected(p.ConnectionId) {
			continue
		}
		s.admit(session, p.ConnectionId, p.DisplayName)
	}
}

// ParticipantJoin adds connId to the requested session, falling back to the
// active session and then the most recently presented one. With no session
// available the participant is queued until a presenter arrives.
func (s *PollService) ParticipantJoin(connId, pollId, name string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(pollId)
	if session == nil {
		session = s.Registry.Active()
	}
	if session == nil {
		session = s.Registry.MostRecentlyPresented()
	}

	name = models.CleanName(name)
	if session == nil {
		s.enqueuePending(connId, name)
		s.gateway.Send(connId, models.Event{Type: models.EventParticipantWaiting})
		s.log.Debug("participant waiting for presenter", "conn", connId)
		return nil
	}
	s.dropPending(connId)
	s.admit(session, connId, name)
	return session
}

func (s *PollService) admit(session *models.Session, connId, name string) {
	session.Roster.Put(models.Participant{ConnectionId: connId, DisplayName: name})
	s.gateway.Subscribe(connId, session.Id)
	s.broadcastRoster(session)
	s.gateway.Send(connId, models.Event{Type: models.EventParticipantReady, Data: participantSnapshot(session)})
	s.log.Info("participant joined", "session", session.Id, "conn", connId, "roster", session.Roster.Len())
}

func (s *PollService) enqueuePending(connId, name string) {
	for i := range s.pending {
		if s.pending[i].ConnectionId == connId {
			s.pending[i].DisplayName = name
			return
		}
	}
	s.pending = append(s.pending, models.PendingJoin{ConnectionId: connId, DisplayName: name})
}

func (s *PollService) dropPending(connId string) {
	for i, p := range s.pending {
		if p.ConnectionId == connId {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// RemoveParticipant evicts targetId. Only the presenter may do this; anything
// else is ignored. Votes already cast stay counted.
func (s *PollService) RemoveParticipant(connId, pollId, targetId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(pollId)
	if session == nil || !session.IsPresenter(connId) || !session.Roster.Has(targetId) {
		return
	}

	s.gateway.Send(targetId, models.Event{Type: models.EventParticipantRemoved})
	s.gateway.Unsubscribe(targetId, session.Id)
	session.Roster.Remove(targetId)
	s.broadcastRoster(session)
	s.log.Info("participant removed", "session", session.Id, "conn", targetId)
}

// Disconnect forgets connId everywhere: rosters, presenter bindings and the
// pending queue.
func (s *PollService) Disconnect(connId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Registry.Each(func(session *models.Session) {
		if session.Roster.Remove(connId) {
			s.broadcastRoster(session)
		}
		if session.IsPresenter(connId) {
			session.PresenterConnectionId = ""
			s.Registry.UnbindPresenter(session)
			s.log.Info("presenter left", "session", session.Id)
		}
	})
	s.dropPending(connId)
}
