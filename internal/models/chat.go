package models

type ChatRole string

const (
	RolePresenter   ChatRole = "presenter"
	RoleParticipant ChatRole = "participant"
)

// ParseChatRole maps anything other than "presenter" to participant.
func ParseChatRole(s string) ChatRole {
	if ChatRole(s) == RolePresenter {
		return RolePresenter
	}
	return RoleParticipant
}

type ChatMessage struct {
	Id      string   `json:"id"`
	At      int64    `json:"at"`
	From    string   `json:"from"`
	Role    ChatRole `json:"role"`
	Message string   `json:"message"`
}
