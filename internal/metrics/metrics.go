package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livepoll_sessions_created_total",
			Help: "Total number of poll sessions created",
		},
	)

	QuestionsAsked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livepoll_questions_asked_total",
			Help: "Total number of questions started",
		},
	)

	AnswersAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livepoll_answers_accepted_total",
			Help: "Total number of votes counted",
		},
	)

	// reason: timeout, all_answered, teacher_end
	QuestionsConcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livepoll_questions_concluded_total",
			Help: "Total number of questions finished, by reason",
		},
		[]string{"reason"},
	)

	Connections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livepoll_connections_current",
			Help: "Current number of open websocket connections",
		},
	)

	FramesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livepoll_frames_dropped_total",
			Help: "Outbound frames dropped because a connection's send buffer was full",
		},
	)
)
