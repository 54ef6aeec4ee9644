package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/review"
	"github.com/seojin/labquiz/internal/stats"
)

// ErrAlreadyFinalized guards the force-finish path: a session is finalized
// exactly once even if the countdown fires while the user is finishing.
var ErrAlreadyFinalized = errors.New("session already finalized")

// Saver is the slice of the persistence layer that session finalization
// needs. Implemented by store.Repo.
type Saver interface {
	ReviewLog(ctx context.Context, period question.Period) ([]int, error)
	SaveReviewLog(ctx context.Context, period question.Period, ids []int) error
	SubjectStats(ctx context.Context, period question.Period) (stats.SubjectStats, error)
	SaveSubjectStats(ctx context.Context, period question.Period, s stats.SubjectStats) error
	AppendExamEntry(ctx context.Context, period question.Period, entry exam.HistoryEntry) error
}

// Outcome is the session result surface shown after a run.
type Outcome struct {
	Mode           Mode
	Total          int
	Score          int
	IncorrectCount int
	Accuracy       float64 // percent, 0 when Total is 0
	Duration       time.Duration
	Slowest        *QuestionTime // nil when nothing was answered

	// MissedIDs are the run's distinct missed question IDs, for the
	// "review these mistakes" action.
	MissedIDs []int

	// HistoryEntry is the persisted exam record, exam mode only.
	HistoryEntry *exam.HistoryEntry
}

// Finalize ends the session, persists its effects per mode, and returns the
// outcome. Persistence is whole-value overwrite at finish time only, so an
// interrupted session loses its corrections but never corrupts a log.
func Finalize(ctx context.Context, s *Session, saver Saver) (*Outcome, error) {
	if s.finalized {
		return nil, ErrAlreadyFinalized
	}
	s.finalized = true
	s.phase = PhaseCompleted

	out := &Outcome{
		Mode:           s.Mode,
		Total:          len(s.questions),
		Score:          s.score,
		IncorrectCount: len(s.newIncorrect),
		Duration:       s.now().Sub(s.startedAt),
		Slowest:        s.slowest(),
		MissedIDs:      s.MissedIDs(),
	}
	if out.Total > 0 {
		out.Accuracy = float64(s.score) / float64(out.Total) * 100
	}

	switch s.Mode {
	case ModePractice:
		cumulative, err := saver.SubjectStats(ctx, s.Period)
		if err != nil {
			return nil, fmt.Errorf("load stats: %w", err)
		}
		if err := saver.SaveSubjectStats(ctx, s.Period, stats.Fold(cumulative, s.results)); err != nil {
			return nil, fmt.Errorf("save stats: %w", err)
		}

		log, err := saver.ReviewLog(ctx, s.Period)
		if err != nil {
			return nil, fmt.Errorf("load review log: %w", err)
		}
		if err := saver.SaveReviewLog(ctx, s.Period, review.Merge(log, s.newIncorrect)); err != nil {
			return nil, fmt.Errorf("save review log: %w", err)
		}

	case ModeReview:
		// The working copy reflects in-session removals. Still-missed
		// questions are merged back in rather than silently dropped.
		if err := saver.SaveReviewLog(ctx, s.Period, review.Merge(s.reviewLog, s.newIncorrect)); err != nil {
			return nil, fmt.Errorf("save review log: %w", err)
		}

	case ModeSingle:
		// Nothing persisted.

	case ModeExam:
		entry := exam.HistoryEntry{
			Date:             s.now(),
			Total:            len(s.questions),
			Correct:          s.score,
			IncorrectIDs:     s.MissedIDs(),
			SubjectBreakdown: stats.Fold(nil, s.results),
		}
		if err := saver.AppendExamEntry(ctx, s.Period, entry); err != nil {
			return nil, fmt.Errorf("append exam history: %w", err)
		}
		out.HistoryEntry = &entry

		// Exam misses feed ordinary review.
		log, err := saver.ReviewLog(ctx, s.Period)
		if err != nil {
			return nil, fmt.Errorf("load review log: %w", err)
		}
		if err := saver.SaveReviewLog(ctx, s.Period, review.Merge(log, s.newIncorrect)); err != nil {
			return nil, fmt.Errorf("save review log: %w", err)
		}
	}

	return out, nil
}
