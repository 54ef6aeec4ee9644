// Package quiz implements the session state machine: one run through a
// prepared question sequence, from start to completion, with per-question
// grading, timing, and mode-dependent bookkeeping.
package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/review"
	"github.com/seojin/labquiz/internal/stats"
)

var (
	// ErrNoQuestions is returned when a session is started with an empty queue.
	ErrNoQuestions = errors.New("no questions to run")

	// ErrNoAnswer is a local validation failure: the learner submitted an
	// empty answer. The session state is unchanged; the caller re-prompts.
	ErrNoAnswer = errors.New("no answer given")

	// ErrNotAwaiting is returned when Submit is called outside the
	// awaiting-answer phase (e.g. a double submit before the next render).
	ErrNotAwaiting = errors.New("session is not awaiting an answer")
)

// Phase is the session's lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAwaitingAnswer
	PhaseFeedback
	PhaseCompleted
)

// QuestionTime records how long one question took to answer.
type QuestionTime struct {
	QuestionID int
	Text       string
	Elapsed    time.Duration
}

// Feedback is the immediate result of a submitted answer.
type Feedback struct {
	Correct bool

	// AutoAdvance is set in exam mode: the caller advances immediately
	// instead of pausing on a feedback display.
	AutoAdvance bool
}

// Session is the state of one quiz run. It is created per run and superseded
// wholesale when a new run starts; callers must not reuse a finalized one.
// The caller selects and orders the question sequence (filter+shuffle for
// practice, sampler output for exam) before starting the session.
type Session struct {
	// ID is the generation token for scheduled callbacks: timer and delay
	// messages carry it, and messages from a superseded session are dropped.
	ID string

	Mode   Mode
	Period question.Period

	questions []question.Question
	index     int
	score     int

	newIncorrect []int
	incorrectSet map[int]bool

	results []stats.Attempt
	times   []QuestionTime

	// reviewLog is the working copy of the persisted review log, mutated by
	// in-session corrections in review mode and persisted only at finish.
	reviewLog []int

	phase       Phase
	lastCorrect bool
	finalized   bool

	startedAt         time.Time
	questionStartedAt time.Time

	now func() time.Time
}

// New creates a session over an already-prepared question sequence.
// reviewLog is the persisted log loaded at session start; it is copied, so
// the caller's slice is never mutated.
func New(mode Mode, period question.Period, questions []question.Question, reviewLog []int) *Session {
	logCopy := make([]int, len(reviewLog))
	copy(logCopy, reviewLog)
	return &Session{
		ID:           uuid.New().String(),
		Mode:         mode,
		Period:       period,
		questions:    questions,
		reviewLog:    logCopy,
		incorrectSet: make(map[int]bool),
		phase:        PhaseNotStarted,
		now:          time.Now,
	}
}

// Begin starts the run at question 0.
func (s *Session) Begin() error {
	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	t := s.now()
	s.startedAt = t
	s.questionStartedAt = t
	s.phase = PhaseAwaitingAnswer
	return nil
}

// Current returns the active question, or nil when the run is over.
func (s *Session) Current() *question.Question {
	if s.index < 0 || s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

// Len returns the number of questions in the run.
func (s *Session) Len() int { return len(s.questions) }

// Number returns the 1-based position of the current question.
func (s *Session) Number() int { return s.index + 1 }

// Score returns the count of correct answers so far.
func (s *Session) Score() int { return s.score }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// LastCorrect reports whether the most recent answer was correct.
func (s *Session) LastCorrect() bool { return s.lastCorrect }

// MissedIDs returns the distinct question IDs answered incorrectly in this
// run, in submission order.
func (s *Session) MissedIDs() []int {
	out := make([]int, len(s.newIncorrect))
	copy(out, s.newIncorrect)
	return out
}

// ReviewLog returns the session's working copy of the review log.
func (s *Session) ReviewLog() []int {
	out := make([]int, len(s.reviewLog))
	copy(out, s.reviewLog)
	return out
}

// Submit grades the learner's answer against the current question.
// Empty answers are rejected with ErrNoAnswer and mutate nothing. Grading is
// exact string equality against the question's canonical answer.
func (s *Session) Submit(answer string) (Feedback, error) {
	if s.phase != PhaseAwaitingAnswer {
		return Feedback{}, ErrNotAwaiting
	}
	if answer == "" {
		return Feedback{}, ErrNoAnswer
	}

	q := s.Current()
	correct := answer == q.Answer
	s.lastCorrect = correct

	s.times = append(s.times, QuestionTime{
		QuestionID: q.ID,
		Text:       q.Text,
		Elapsed:    s.now().Sub(s.questionStartedAt),
	})

	if correct {
		s.score++
		if s.Mode == ModeReview {
			// Corrected: drop from the working log now, persist at finish.
			s.reviewLog = review.Remove(s.reviewLog, q.ID)
		}
	} else if !s.incorrectSet[q.ID] {
		s.incorrectSet[q.ID] = true
		s.newIncorrect = append(s.newIncorrect, q.ID)
	}

	// Only plain practice and exam results feed aggregate tallies: review
	// answers were counted when first practiced, and single-problem runs
	// never count.
	if s.Mode == ModePractice || s.Mode == ModeExam {
		s.results = append(s.results, stats.Attempt{
			Subject: q.Subject,
			Correct: correct,
		})
	}

	s.phase = PhaseFeedback
	return Feedback{
		Correct:     correct,
		AutoAdvance: s.Mode == ModeExam,
	}, nil
}

// Advance moves to the next question. Returns false when the run is complete;
// the caller then finalizes the session.
func (s *Session) Advance() bool {
	if s.phase != PhaseFeedback {
		return s.phase == PhaseAwaitingAnswer
	}
	s.index++
	if s.index >= len(s.questions) {
		s.phase = PhaseCompleted
		return false
	}
	s.phase = PhaseAwaitingAnswer
	s.questionStartedAt = s.now()
	return true
}

// ForceComplete ends the run immediately, keeping whatever answers were
// already submitted. Used when the exam countdown reaches zero.
func (s *Session) ForceComplete() {
	if s.phase != PhaseCompleted {
		s.phase = PhaseCompleted
	}
}

// slowest returns the single slowest-answered question, first-encountered on
// ties, or nil when nothing was answered.
func (s *Session) slowest() *QuestionTime {
	var max *QuestionTime
	for i := range s.times {
		if max == nil || s.times[i].Elapsed > max.Elapsed {
			max = &s.times[i]
		}
	}
	return max
}
