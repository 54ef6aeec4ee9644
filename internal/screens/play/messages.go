package play

import (
	"time"

	"github.com/seojin/labquiz/internal/quiz"
)

// timerTickMsg is sent every second to update the exam countdown. It carries
// the session ID so ticks from a superseded session are dropped.
type timerTickMsg struct {
	SessionID string
	Time      time.Time
}

// feedbackDoneMsg ends the brief correct-answer display in practice modes.
// It carries the session ID for the same staleness guard.
type feedbackDoneMsg struct {
	SessionID string
}

// finishedMsg is sent when session finalization completes.
type finishedMsg struct {
	Outcome *quiz.Outcome
	Err     error
}
