package models

import "time"

type QuestionStatus string

const (
	QuestionActive   QuestionStatus = "active"
	QuestionFinished QuestionStatus = "finished"
)

type ConcludeReason string

const (
	ReasonTimeout     ConcludeReason = "timeout"
	ReasonAllAnswered ConcludeReason = "all_answered"
	ReasonTeacherEnd  ConcludeReason = "teacher_end"
)

// Deadline is the armed timeout task of a question.
type Deadline interface {
	Stop() bool
}

type Option struct {
	Id    string `json:"id"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type Question struct {
	Id           string
	Text         string
	Options      []*Option
	AskedAt      time.Time
	DurationSec  int
	Status       QuestionStatus
	TotalAnswers int
	AnsweredBy   map[string]struct{}
	Deadline     Deadline
}

func (q *Question) IsActive() bool {
	return q.Status == QuestionActive
}

func (q *Question) HasAnswered(connId string) bool {
	_, ok := q.AnsweredBy[connId]
	return ok
}

func (q *Question) Option(optionId string) *Option {
	for _, o := range q.Options {
		if o.Id == optionId {
			return o
		}
	}
	return nil
}

// Tally sums the option counts. It always equals TotalAnswers and len(AnsweredBy).
func (q *Question) Tally() int {
	n := 0
	for _, o := range q.Options {
		n += o.Count
	}
	return n
}

// Record counts one vote. Callers have already checked eligibility.
func (q *Question) Record(connId string, o *Option) {
	o.Count++
	q.TotalAnswers++
	q.AnsweredBy[connId] = struct{}{}
}

func (q *Question) OptionCounts() []Option {
	out := make([]Option, 0, len(q.Options))
	for _, o := range q.Options {
		out = append(out, *o)
	}
	return out
}

// QuestionResult is the immutable snapshot stored in a session's history.
type QuestionResult struct {
	QuestionId   string         `json:"questionId"`
	Text         string         `json:"text"`
	Options      []Option       `json:"options"`
	TotalAnswers int            `json:"totalAnswers"`
	DurationSec  int            `json:"durationSec"`
	FinishedAt   int64          `json:"finishedAt"`
	Reason       ConcludeReason `json:"reason"`
}

func (q *Question) Result(finishedAt time.Time, reason ConcludeReason) QuestionResult {
	return QuestionResult{
		QuestionId:   q.Id,
		Text:         q.Text,
		Options:      q.OptionCounts(),
		TotalAnswers: q.TotalAnswers,
		DurationSec:  q.DurationSec,
		FinishedAt:   finishedAt.UnixMilli(),
		Reason:       reason,
	}
}
