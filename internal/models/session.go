package models

// Session is one poll instance: one presenter, many participants, at most one
// current question.
type Session struct {
	Id                    string
	PresenterConnectionId string // empty when no presenter is bound
	Roster                *Roster
	CurrentQuestion       *Question
	History               []QuestionResult // most recent first
}

func NewSession(id string) *Session {
	return &Session{
		Id:      id,
		Roster:  NewRoster(),
		History: []QuestionResult{},
	}
}

func (s *Session) HasPresenter() bool {
	return s.PresenterConnectionId != ""
}

func (s *Session) IsPresenter(connId string) bool {
	return connId != "" && s.PresenterConnectionId == connId
}

// PushResult prepends a finished question to the history.
func (s *Session) PushResult(r QuestionResult) {
	s.History = append([]QuestionResult{r}, s.History...)
}

// PendingJoin is a participant that arrived before any session had a presenter.
type PendingJoin struct {
	ConnectionId string
	DisplayName  string
}
