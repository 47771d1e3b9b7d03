package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/latestcomment/livepoll/internal/models"
)

type sentEvent struct {
	To    string
	Event models.Event
}

// recordingGateway captures every delivery instead of writing to sockets.
type recordingGateway struct {
	unicasts   []sentEvent
	broadcasts []sentEvent
	subs       map[string]map[string]bool
	gone       map[string]bool
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{
		subs: make(map[string]map[string]bool),
		gone: make(map[string]bool),
	}
}

func (g *recordingGateway) Send(connId string, ev models.Event) {
	g.unicasts = append(g.unicasts, sentEvent{To: connId, Event: ev})
}

func (g *recordingGateway) Broadcast(sessionId string, ev models.Event) {
	g.broadcasts = append(g.broadcasts, sentEvent{To: sessionId, Event: ev})
}

func (g *recordingGateway) Subscribe(connId, sessionId string) {
	if g.subs[sessionId] == nil {
		g.subs[sessionId] = make(map[string]bool)
	}
	g.subs[sessionId][connId] = true
}

func (g *recordingGateway) Unsubscribe(connId, sessionId string) {
	delete(g.subs[sessionId], connId)
}

func (g *recordingGateway) Connected(connId string) bool {
	return !g.gone[connId]
}

func (g *recordingGateway) unicastsTo(connId, typ string) []models.Event {
	var out []models.Event
	for _, s := range g.unicasts {
		if s.To == connId && s.Event.Type == typ {
			out = append(out, s.Event)
		}
	}
	return out
}

func (g *recordingGateway) broadcastsOf(sessionId, typ string) []models.Event {
	var out []models.Event
	for _, s := range g.broadcasts {
		if s.To == sessionId && s.Event.Type == typ {
			out = append(out, s.Event)
		}
	}
	return out
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// manualScheduler runs deadlines only when the test advances its clock.
type manualScheduler struct {
	elapsed time.Duration
	timers  []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) models.Deadline {
	t := &manualTimer{at: s.elapsed + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.elapsed += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.elapsed {
			t.fired = true
			t.f()
		}
	}
}

// forceFire runs a timer's callback even if it was stopped, as if the
// cancellation had been lost.
func (t *manualTimer) forceFire() {
	t.fired = true
	t.f()
}

func (s *manualScheduler) last() *manualTimer {
	return s.timers[len(s.timers)-1]
}

type fixture struct {
	svc   *PollService
	gw    *recordingGateway
	sched *manualScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := newRecordingGateway()
	sched := &manualScheduler{}
	svc := NewPollService(gw, Options{
		Scheduler:          sched,
		DefaultDurationSec: 60,
		MaxDurationSec:     300,
		Now:                func() time.Time { return time.UnixMilli(1_700_000_000_000) },
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &fixture{svc: svc, gw: gw, sched: sched}
}

// presentWith creates a session with presenter "teacher" and the given participants.
func (f *fixture) presentWith(t *testing.T, participants ...string) *models.Session {
	t.Helper()
	session := f.svc.PresenterJoin("teacher", "")
	for _, p := range participants {
		f.svc.ParticipantJoin(p, session.Id, "name-"+p)
	}
	return session
}

func (f *fixture) ask(t *testing.T, session *models.Session, duration float64, options ...string) *models.Question {
	t.Helper()
	err := f.svc.AskQuestion("teacher", models.AskQuestionPayload{
		PollId:      session.Id,
		Text:        "Pick one?",
		Options:     options,
		DurationSec: duration,
	})
	if err != nil {
		t.Fatalf("AskQuestion failed: %v", err)
	}
	if session.CurrentQuestion == nil {
		t.Fatal("Expected a current question")
	}
	return session.CurrentQuestion
}

func optionByText(t *testing.T, q *models.Question, text string) *models.Option {
	t.Helper()
	for _, o := range q.Options {
		if o.Text == text {
			return o
		}
	}
	t.Fatalf("option %q not found", text)
	return nil
}
