package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/stats"
)

// Record keys, one namespace per exam period.
const (
	keyReviewLog   = "incorrect_log"
	keyStats       = "quiz_stats"
	keyExamHistory = "exam_history"
)

// Repo provides typed access to the persisted progress records. It satisfies
// the session finalizer's Saver interface.
type Repo struct {
	db *sql.DB
}

func periodKey(prefix string, period question.Period) string {
	return prefix + ":" + string(period)
}

// get loads the JSON document under key into dst. A missing key leaves dst
// untouched and reports false.
func (r *Repo) get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM progress WHERE key = ?", key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// put overwrites the JSON document under key.
func (r *Repo) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO progress (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ReviewLog returns the period's persisted incorrect-answer log, empty when
// none has been saved yet.
func (r *Repo) ReviewLog(ctx context.Context, period question.Period) ([]int, error) {
	var ids []int
	if _, err := r.get(ctx, periodKey(keyReviewLog, period), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveReviewLog overwrites the period's incorrect-answer log.
func (r *Repo) SaveReviewLog(ctx context.Context, period question.Period, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	return r.put(ctx, periodKey(keyReviewLog, period), ids)
}

// SubjectStats returns the period's cumulative per-subject tallies, empty
// when none have been saved yet.
func (r *Repo) SubjectStats(ctx context.Context, period question.Period) (stats.SubjectStats, error) {
	s := stats.SubjectStats{}
	if _, err := r.get(ctx, periodKey(keyStats, period), &s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSubjectStats overwrites the period's cumulative tallies.
func (r *Repo) SaveSubjectStats(ctx context.Context, period question.Period, s stats.SubjectStats) error {
	if s == nil {
		s = stats.SubjectStats{}
	}
	return r.put(ctx, periodKey(keyStats, period), s)
}

// ExamHistory returns the period's recorded exams, oldest first.
func (r *Repo) ExamHistory(ctx context.Context, period question.Period) ([]exam.HistoryEntry, error) {
	var entries []exam.HistoryEntry
	if _, err := r.get(ctx, periodKey(keyExamHistory, period), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendExamEntry adds one finished exam to the period's history.
func (r *Repo) AppendExamEntry(ctx context.Context, period question.Period, entry exam.HistoryEntry) error {
	entries, err := r.ExamHistory(ctx, period)
	if err != nil {
		return err
	}
	return r.put(ctx, periodKey(keyExamHistory, period), append(entries, entry))
}

// ResetPeriod deletes every record for the period. Used by the reset command.
func (r *Repo) ResetPeriod(ctx context.Context, period question.Period) error {
	for _, prefix := range []string{keyReviewLog, keyStats, keyExamHistory} {
		_, err := r.db.ExecContext(ctx,
			"DELETE FROM progress WHERE key = ?", periodKey(prefix, period),
		)
		if err != nil {
			return fmt.Errorf("reset %s: %w", prefix, err)
		}
	}
	return nil
}
