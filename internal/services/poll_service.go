package services

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/latestcomment/livepoll/internal/models"
)

// Rejections delivered back to the caller that issued the request.
var (
	ErrPollNotFound       = errors.New("Poll not found")
	ErrNotAuthorized      = errors.New("Not authorized")
	ErrQuestionInProgress = errors.New("Wait until previous question finishes")
)

// durationCap is the longest a question may run, whatever Options asks for.
const durationCap = 300

type Options struct {
	Scheduler          Scheduler
	DefaultDurationSec int
	MaxDurationSec     int
	Now                func() time.Time
	Logger             *slog.Logger
}

// PollService coordinates sessions, their question lifecycle and the
// connections attached to them. Every exported method, and every deadline
// firing, runs under a single lock.
type PollService struct {
	mu       sync.Mutex
	Registry *SessionRegistry

	gateway   Gateway
	scheduler Scheduler
	pending   []models.PendingJoin

	defaultDurationSec int
	maxDurationSec     int
	now                func() time.Time
	log                *slog.Logger
}

func NewPollService(gateway Gateway, opts Options) *PollService {
	s := &PollService{
		Registry:           NewSessionRegistry(),
		gateway:            gateway,
		scheduler:          opts.Scheduler,
		defaultDurationSec: opts.DefaultDurationSec,
		maxDurationSec:     opts.MaxDurationSec,
		now:                opts.Now,
		log:                opts.Logger,
	}
	if s.scheduler == nil {
		s.scheduler = NewTimeScheduler()
	}
	if s.maxDurationSec <= 0 || s.maxDurationSec > durationCap {
		s.maxDurationSec = durationCap
	}
	if s.defaultDurationSec <= 0 || s.defaultDurationSec > s.maxDurationSec {
		s.defaultDurationSec = min(60, s.maxDurationSec)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

func (s *PollService) broadcastRoster(session *models.Session) {
	s.gateway.Broadcast(session.Id, models.Event{Type: models.EventRosterUpdate, Data: session.Roster.List()})
}

func presenterSnapshot(session *models.Session) models.PresenterSnapshot {
	return models.PresenterSnapshot{
		PollId:          session.Id,
		Participants:    session.Roster.List(),
		CurrentQuestion: session.CurrentQuestion.View(),
		PastQuestions:   session.History,
	}
}

func participantSnapshot(session *models.Session) models.ParticipantSnapshot {
	return models.ParticipantSnapshot{
		PollId:          session.Id,
		CurrentQuestion: session.CurrentQuestion.View(),
		PastQuestions:   session.History,
	}
}

func summarize(session *models.Session) models.SessionSummary {
	return models.SessionSummary{
		PollId:          session.Id,
		HasPresenter:    session.HasPresenter(),
		Participants:    session.Roster.Len(),
		CurrentQuestion: session.CurrentQuestion.View(),
		PastQuestions:   session.History,
	}
}

// Summary describes one session, or reports false when it does not exist.
func (s *PollService) Summary(pollId string) (models.SessionSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(pollId)
	if session == nil {
		return models.SessionSummary{}, false
	}
	return summarize(session), true
}

// Summaries lists every session in creation order.
func (s *PollService) Summaries() []models.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SessionSummary, 0, s.Registry.Len())
	s.Registry.Each(func(session *models.Session) {
		out = append(out, summarize(session))
	})
	return out
}

// PendingCount is the number of participants waiting for a presenter.
func (s *PollService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
