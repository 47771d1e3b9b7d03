package models

import "strings"

const (
	MaxNameLen     = 40
	MaxQuestionLen = 140
	MaxOptionLen   = 80
	MaxChatBodyLen = 280

	DefaultQuestionText = "Question"
)

var DefaultOptions = []string{"A", "B", "C", "D"}

// Truncate caps s at n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func CleanName(s string) string {
	return Truncate(strings.TrimSpace(s), MaxNameLen)
}
