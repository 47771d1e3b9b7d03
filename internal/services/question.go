package services

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/latestcomment/livepoll/internal/metrics"
	"github.com/latestcomment/livepoll/internal/models"
)

// AskQuestion starts a new question in the requester's session.
func (s *PollService) AskQuestion(connId string, p models.AskQuestionPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(p.PollId)
	if session == nil {
		return ErrPollNotFound
	}
	if !session.IsPresenter(connId) {
		return ErrNotAuthorized
	}
	if !canAskAnother(session) {
		return ErrQuestionInProgress
	}

	// Everyone answered a question that is still open (the roster shrank
	// after the last vote); close it before replacing it.
	if prev := session.CurrentQuestion; prev != nil && prev.IsActive() {
		s.conclude(session, models.ReasonAllAnswered)
	}

	q := s.newQuestion(p)
	session.CurrentQuestion = q
	q.Deadline = s.scheduler.AfterFunc(time.Duration(q.DurationSec)*time.Second, func() {
		s.deadlineFired(session, q)
	})

	s.gateway.Broadcast(session.Id, models.Event{Type: models.EventQuestionAsked, Data: q.Announcement()})
	metrics.QuestionsAsked.Inc()
	s.log.Info("question asked", "session", session.Id, "question", q.Id, "options", len(q.Options), "duration_sec", q.DurationSec)
	return nil
}

// canAskAnother holds when no question is running, or when every participant
// on a non-empty roster has already answered the running one.
func canAskAnother(session *models.Session) bool {
	q := session.CurrentQuestion
	if q == nil || !q.IsActive() {
		return true
	}
	if session.Roster.Len() == 0 {
		return false
	}
	for _, id := range session.Roster.Ids() {
		if !q.HasAnswered(id) {
			return false
		}
	}
	return true
}

func (s *PollService) newQuestion(p models.AskQuestionPayload) *models.Question {
	text := models.Truncate(p.Text, models.MaxQuestionLen)
	if text == "" {
		text = models.DefaultQuestionText
	}

	labels := p.Options
	if len(labels) == 0 {
		labels = models.DefaultOptions
	}
	options := make([]*models.Option, 0, len(labels))
	for _, l := range labels {
		options = append(options, &models.Option{
			Id:   uuid.NewString(),
			Text: models.Truncate(l, models.MaxOptionLen),
		})
	}

	return &models.Question{
		Id:          uuid.NewString(),
		Text:        text,
		Options:     options,
		AskedAt:     s.now(),
		DurationSec: s.clampDuration(p.DurationSec),
		Status:      models.QuestionActive,
		AnsweredBy:  make(map[string]struct{}),
	}
}

// clampDuration maps the requested seconds into (0, max], using the default
// for anything non-positive.
func (s *PollService) clampDuration(sec float64) int {
	if math.IsNaN(sec) || sec <= 0 {
		return s.defaultDurationSec
	}
	if sec > float64(s.maxDurationSec) {
		return s.maxDurationSec
	}
	return int(math.Ceil(sec))
}

func (s *PollService) deadlineFired(session *models.Session, q *models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A stale timer must not end a newer question.
	if session.CurrentQuestion != q {
		return
	}
	s.conclude(session, models.ReasonTimeout)
}

// SubmitAnswer records a vote. Anything stale or malformed is dropped.
func (s *PollService) SubmitAnswer(connId string, p models.SubmitAnswerPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session *models.Session
	if p.PollId != "" {
		session = s.Registry.Get(p.PollId)
	} else {
		session = s.Registry.FindByParticipant(connId)
	}
	if session == nil || session.CurrentQuestion == nil {
		return
	}
	if !session.Roster.Has(connId) {
		return
	}

	q := session.CurrentQuestion
	if q.Id != p.QuestionId || !q.IsActive() || q.HasAnswered(connId) {
		return
	}
	option := q.Option(p.OptionId)
	if option == nil {
		return
	}

	q.Record(connId, option)
	metrics.AnswersAccepted.Inc()

	s.gateway.Broadcast(session.Id, models.Event{
		Type: models.EventResultsUpdate,
		Data: models.ResultsUpdate{
			QuestionId:        q.Id,
			Options:           q.OptionCounts(),
			TotalAnswers:      q.TotalAnswers,
			ParticipantsTotal: session.Roster.Len(),
		},
	})

	if n := session.Roster.Len(); n > 0 && q.TotalAnswers >= n {
		s.conclude(session, models.ReasonAllAnswered)
	}
}

// EndQuestion lets the presenter close the running question early.
func (s *PollService) EndQuestion(connId, pollId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.Registry.Get(pollId)
	if session == nil || !session.IsPresenter(connId) {
		return
	}
	s.conclude(session, models.ReasonTeacherEnd)
}

// ConcludeQuestion finishes the session's current question, if any.
func (s *PollService) ConcludeQuestion(pollId string, reason models.ConcludeReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session := s.Registry.Get(pollId); session != nil {
		s.conclude(session, reason)
	}
}

func (s *PollService) conclude(session *models.Session, reason models.ConcludeReason) {
	q := session.CurrentQuestion
	if q == nil {
		return
	}
	if q.Deadline != nil {
		q.Deadline.Stop()
	}
	q.Status = models.QuestionFinished

	result := q.Result(s.now(), reason)
	session.PushResult(result)
	session.CurrentQuestion = nil

	s.gateway.Broadcast(session.Id, models.Event{Type: models.EventQuestionFinished, Data: result})
	metrics.QuestionsConcluded.WithLabelValues(string(reason)).Inc()
	s.log.Info("question finished", "session", session.Id, "question", q.Id, "reason", reason, "answers", q.TotalAnswers)
}
