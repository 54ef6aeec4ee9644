package store

import (
	"context"
	"testing"
	"time"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='progress'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "progress" {
		t.Errorf("table name = %q, want 'progress'", name)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReviewLogRoundTrip(t *testing.T) {
	repo := openTestStore(t).Repo()
	ctx := context.Background()

	// Empty before any save.
	ids, err := repo.ReviewLog(ctx, question.PeriodPractical)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty log, got %v", ids)
	}

	if err := repo.SaveReviewLog(ctx, question.PeriodPractical, []int{3, 7, 11}); err != nil {
		t.Fatalf("save: %v", err)
	}

	ids, err = repo.ReviewLog(ctx, question.PeriodPractical)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[2] != 11 {
		t.Errorf("log = %v, want [3 7 11]", ids)
	}

	// Overwrite replaces, never merges.
	if err := repo.SaveReviewLog(ctx, question.PeriodPractical, []int{7}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	ids, _ = repo.ReviewLog(ctx, question.PeriodPractical)
	if len(ids) != 1 || ids[0] != 7 {
		t.Errorf("log after overwrite = %v, want [7]", ids)
	}
}

func TestPeriodsAreIsolated(t *testing.T) {
	repo := openTestStore(t).Repo()
	ctx := context.Background()

	if err := repo.SaveReviewLog(ctx, question.PeriodPractical, []int{1}); err != nil {
		t.Fatalf("save practical: %v", err)
	}
	if err := repo.SaveReviewLog(ctx, question.PeriodTheory, []int{2}); err != nil {
		t.Fatalf("save theory: %v", err)
	}

	practical, _ := repo.ReviewLog(ctx, question.PeriodPractical)
	theory, _ := repo.ReviewLog(ctx, question.PeriodTheory)
	if len(practical) != 1 || practical[0] != 1 {
		t.Errorf("practical log = %v, want [1]", practical)
	}
	if len(theory) != 1 || theory[0] != 2 {
		t.Errorf("theory log = %v, want [2]", theory)
	}
}

func TestSubjectStatsRoundTrip(t *testing.T) {
	repo := openTestStore(t).Repo()
	ctx := context.Background()

	in := stats.SubjectStats{
		"혈액학": {Correct: 8, Total: 11},
		"조직학": {Correct: 5, Total: 9},
	}
	if err := repo.SaveSubjectStats(ctx, question.PeriodPractical, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.SubjectStats(ctx, question.PeriodPractical)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["혈액학"].Correct != 8 || got["혈액학"].Total != 11 {
		t.Errorf("혈액학 = %+v, want 8/11", got["혈액학"])
	}
	if got["조직학"].Total != 9 {
		t.Errorf("조직학 = %+v, want 5/9", got["조직학"])
	}
}

func TestAppendExamEntryAccumulates(t *testing.T) {
	repo := openTestStore(t).Repo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.AppendExamEntry(ctx, question.PeriodPractical, exam.HistoryEntry{
			Date:             base.Add(time.Duration(i) * time.Hour),
			Total:            65,
			Correct:          50 + i,
			IncorrectIDs:     []int{1, 2},
			SubjectBreakdown: stats.SubjectStats{"혈액학": {Correct: 50 + i, Total: 65}},
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := repo.ExamHistory(ctx, question.PeriodPractical)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	// Oldest first.
	if entries[0].Correct != 50 || entries[2].Correct != 52 {
		t.Errorf("order wrong: %d then %d", entries[0].Correct, entries[2].Correct)
	}
	if entries[1].SubjectBreakdown["혈액학"].Total != 65 {
		t.Errorf("breakdown lost: %+v", entries[1].SubjectBreakdown)
	}
}

func TestResetPeriod(t *testing.T) {
	repo := openTestStore(t).Repo()
	ctx := context.Background()

	repo.SaveReviewLog(ctx, question.PeriodPractical, []int{1, 2})
	repo.SaveSubjectStats(ctx, question.PeriodPractical, stats.SubjectStats{"s": {Correct: 1, Total: 1}})
	repo.AppendExamEntry(ctx, question.PeriodPractical, exam.HistoryEntry{Total: 65})
	repo.SaveReviewLog(ctx, question.PeriodTheory, []int{9})

	if err := repo.ResetPeriod(ctx, question.PeriodPractical); err != nil {
		t.Fatalf("reset: %v", err)
	}

	ids, _ := repo.ReviewLog(ctx, question.PeriodPractical)
	st, _ := repo.SubjectStats(ctx, question.PeriodPractical)
	hist, _ := repo.ExamHistory(ctx, question.PeriodPractical)
	if len(ids) != 0 || len(st) != 0 || len(hist) != 0 {
		t.Errorf("period not fully reset: log=%v stats=%v history=%d", ids, st, len(hist))
	}

	// Other period untouched.
	theory, _ := repo.ReviewLog(ctx, question.PeriodTheory)
	if len(theory) != 1 {
		t.Errorf("theory log = %v, want [9]", theory)
	}
}
