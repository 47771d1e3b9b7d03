package services

import (
	"github.com/google/uuid"
	"github.com/latestcomment/livepoll/internal/models"
)

const sessionIdLen = 6

// SessionRegistry owns every Session for the lifetime of the process.
// It is not safe for concurrent use; PollService serializes access.
type SessionRegistry struct {
	sessions map[string]*models.Session
	order    []string

	// active is the session most recently bound by a presenter join.
	active string
	// bound lists presenter-bound sessions, oldest bind first.
	bound []string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*models.Session)}
}

// Create registers a session with a short random id.
func (r *SessionRegistry) Create() *models.Session {
	id := newSessionId()
	for r.sessions[id] != nil {
		id = newSessionId()
	}
	s := models.NewSession(id)
	r.sessions[id] = s
	r.order = append(r.order, id)
	return s
}

func newSessionId() string {
	return uuid.NewString()[:sessionIdLen]
}

func (r *SessionRegistry) Get(id string) *models.Session {
	if id == "" {
		return nil
	}
	return r.sessions[id]
}

func (r *SessionRegistry) Len() int {
	return len(r.order)
}

// Each calls fn for every session in creation order.
func (r *SessionRegistry) Each(fn func(*models.Session)) {
	for _, id := range r.order {
		fn(r.sessions[id])
	}
}

// Active is the session most recently taken by a presenter, or nil once that
// presenter has gone.
func (r *SessionRegistry) Active() *models.Session {
	return r.Get(r.active)
}

// MostRecentlyPresented is the newest session that still has a presenter.
func (r *SessionRegistry) MostRecentlyPresented() *models.Session {
	if len(r.bound) == 0 {
		return nil
	}
	return r.Get(r.bound[len(r.bound)-1])
}

func (r *SessionRegistry) BindPresenter(s *models.Session) {
	r.dropBound(s.Id)
	r.bound = append(r.bound, s.Id)
	r.active = s.Id
}

func (r *SessionRegistry) UnbindPresenter(s *models.Session) {
	r.dropBound(s.Id)
	if r.active == s.Id {
		r.active = ""
	}
}

func (r *SessionRegistry) dropBound(id string) {
	for i, b := range r.bound {
		if b == id {
			r.bound = append(r.bound[:i], r.bound[i+1:]...)
			return
		}
	}
}

// FindByParticipant returns the first session whose roster holds connId.
func (r *SessionRegistry) FindByParticipant(connId string) *models.Session {
	for _, id := range r.order {
		if s := r.sessions[id]; s.Roster.Has(connId) {
			return s
		}
	}
	return nil
}
