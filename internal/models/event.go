package models

import "encoding/json"

// Inbound event types.
const (
	EventCreateSession     = "session:create"
	EventPresenterInit     = "presenter:init"
	EventParticipantInit   = "participant:init"
	EventAskQuestion       = "presenter:askQuestion"
	EventSubmitAnswer      = "participant:submit"
	EventEndQuestion       = "presenter:endQuestion"
	EventRemoveParticipant = "presenter:removeParticipant"
	EventChatSend          = "chat:send"
)

// Outbound event types.
const (
	EventSessionCreated     = "session:created"
	EventPresenterReady     = "presenter:ready"
	EventParticipantReady   = "participant:ready"
	EventParticipantWaiting = "participant:waiting"
	EventRosterUpdate       = "roster:update"
	EventQuestionAsked      = "questionAsked"
	EventResultsUpdate      = "results:update"
	EventQuestionFinished   = "questionFinished"
	EventParticipantRemoved = "participant:removed"
	EventChatMessage        = "chat:message"
	EventError              = "errorMessage"
)

// Event is the frame written to clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// InboundEvent is a frame read from a client; Data is decoded per Type.
type InboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type InitPayload struct {
	PollId string `json:"pollId"`
	Name   string `json:"name"`
}

type AskQuestionPayload struct {
	PollId      string   `json:"pollId"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	DurationSec float64  `json:"durationSec"`
}

type SubmitAnswerPayload struct {
	PollId     string `json:"pollId"`
	QuestionId string `json:"questionId"`
	OptionId   string `json:"optionId"`
}

type PollPayload struct {
	PollId string `json:"pollId"`
}

type RemoveParticipantPayload struct {
	PollId        string `json:"pollId"`
	ParticipantId string `json:"participantId"`
}

type ChatPayload struct {
	PollId  string `json:"pollId"`
	From    string `json:"from"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

type SessionCreated struct {
	PollId string `json:"pollId"`
}

// OptionLabel is an option without its count, as announced when a question starts.
type OptionLabel struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

type QuestionAnnouncement struct {
	Id          string        `json:"id"`
	Text        string        `json:"text"`
	Options     []OptionLabel `json:"options"`
	AskedAt     int64         `json:"askedAt"`
	DurationSec int           `json:"durationSec"`
}

// QuestionView is the current question as carried in join snapshots.
type QuestionView struct {
	Id           string         `json:"id"`
	Text         string         `json:"text"`
	Options      []Option       `json:"options"`
	AskedAt      int64          `json:"askedAt"`
	DurationSec  int            `json:"durationSec"`
	TotalAnswers int            `json:"totalAnswers"`
	Status       QuestionStatus `json:"status"`
}

type ResultsUpdate struct {
	QuestionId        string   `json:"questionId"`
	Options           []Option `json:"options"`
	TotalAnswers      int      `json:"totalAnswers"`
	ParticipantsTotal int      `json:"participantsTotal"`
}

type PresenterSnapshot struct {
	PollId          string           `json:"pollId"`
	Participants    []Participant    `json:"participants"`
	CurrentQuestion *QuestionView    `json:"currentQuestion"`
	PastQuestions   []QuestionResult `json:"pastQuestions"`
}

type ParticipantSnapshot struct {
	PollId          string           `json:"pollId"`
	CurrentQuestion *QuestionView    `json:"currentQuestion"`
	PastQuestions   []QuestionResult `json:"pastQuestions"`
}

// SessionSummary backs the HTTP session lookup and the landing page.
type SessionSummary struct {
	PollId          string           `json:"pollId"`
	HasPresenter    bool             `json:"hasPresenter"`
	Participants    int              `json:"participants"`
	CurrentQuestion *QuestionView    `json:"currentQuestion"`
	PastQuestions   []QuestionResult `json:"pastQuestions"`
}

func (q *Question) Announcement() QuestionAnnouncement {
	opts := make([]OptionLabel, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, OptionLabel{Id: o.Id, Text: o.Text})
	}
	return QuestionAnnouncement{
		Id:          q.Id,
		Text:        q.Text,
		Options:     opts,
		AskedAt:     q.AskedAt.UnixMilli(),
		DurationSec: q.DurationSec,
	}
}

// View returns nil for a nil question so snapshots carry a JSON null.
func (q *Question) View() *QuestionView {
	if q == nil {
		return nil
	}
	return &QuestionView{
		Id:           q.Id,
		Text:         q.Text,
		Options:      q.OptionCounts(),
		AskedAt:      q.AskedAt.UnixMilli(),
		DurationSec:  q.DurationSec,
		TotalAnswers: q.TotalAnswers,
		Status:       q.Status,
	}
}
