package services

import (
	"time"

	"github.com/latestcomment/livepoll/internal/models"
)

// Scheduler arms question deadlines.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) models.Deadline
}

type timeScheduler struct{}

// NewTimeScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimeScheduler() Scheduler {
	return timeScheduler{}
}

func (timeScheduler) AfterFunc(d time.Duration, f func()) models.Deadline {
	return time.AfterFunc(d, f)
}
