package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/seojin/labquiz/internal/exam"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/stats"
)

// memSaver is an in-memory Saver for finalization tests.
type memSaver struct {
	reviewLog []int
	stats     stats.SubjectStats
	history   []exam.HistoryEntry
}

func (m *memSaver) ReviewLog(ctx context.Context, period question.Period) ([]int, error) {
	return m.reviewLog, nil
}

func (m *memSaver) SaveReviewLog(ctx context.Context, period question.Period, ids []int) error {
	m.reviewLog = ids
	return nil
}

func (m *memSaver) SubjectStats(ctx context.Context, period question.Period) (stats.SubjectStats, error) {
	return m.stats, nil
}

func (m *memSaver) SaveSubjectStats(ctx context.Context, period question.Period, s stats.SubjectStats) error {
	m.stats = s
	return nil
}

func (m *memSaver) AppendExamEntry(ctx context.Context, period question.Period, entry exam.HistoryEntry) error {
	m.history = append(m.history, entry)
	return nil
}

func TestFinalize_PracticePersistsStatsAndMisses(t *testing.T) {
	saver := &memSaver{reviewLog: []int{5}}
	s := startedSession(t, ModePractice, threeQuestions(), nil)

	s.Submit("a") // 혈액학 correct
	s.Advance()
	s.Submit("wrong") // 혈액학 incorrect
	s.Advance()
	s.Submit("c") // 조직학 correct
	s.Advance()

	out, err := Finalize(context.Background(), s, saver)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if out.Total != 3 || out.Score != 2 || out.IncorrectCount != 1 {
		t.Errorf("outcome = %d/%d, %d incorrect", out.Score, out.Total, out.IncorrectCount)
	}

	heme := saver.stats["혈액학"]
	if heme.Total != 2 || heme.Correct != 1 {
		t.Errorf("혈액학 tally = %+v, want 1/2", heme)
	}
	histo := saver.stats["조직학"]
	if histo.Total != 1 || histo.Correct != 1 {
		t.Errorf("조직학 tally = %+v, want 1/1", histo)
	}

	// Miss merged into the existing log, ascending.
	if len(saver.reviewLog) != 2 || saver.reviewLog[0] != 2 || saver.reviewLog[1] != 5 {
		t.Errorf("review log = %v, want [2 5]", saver.reviewLog)
	}
}

func TestFinalize_ReviewRemovesCorrectedKeepsMissed(t *testing.T) {
	saver := &memSaver{
		reviewLog: []int{1, 2, 42},
		stats:     stats.SubjectStats{"혈액학": {Correct: 3, Total: 4}},
	}
	qs := []question.Question{
		{ID: 42, Subject: "혈액학", Type: question.TypeFreeText, Text: "q", Answer: "a"},
	}
	s := startedSession(t, ModeReview, qs, saver.reviewLog)

	s.Submit("a") // corrected
	s.Advance()

	if _, err := Finalize(context.Background(), s, saver); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	for _, id := range saver.reviewLog {
		if id == 42 {
			t.Error("corrected question must be removed from the persisted log")
		}
	}
	if len(saver.reviewLog) != 2 {
		t.Errorf("review log = %v, want the two untouched entries", saver.reviewLog)
	}

	// Review runs never touch cumulative stats.
	if got := saver.stats["혈액학"]; got.Correct != 3 || got.Total != 4 {
		t.Errorf("stats changed during review: %+v", got)
	}
}

func TestFinalize_ReviewMergesStillMissedBack(t *testing.T) {
	saver := &memSaver{reviewLog: []int{7}}
	qs := []question.Question{
		{ID: 7, Subject: "s", Type: question.TypeFreeText, Text: "q", Answer: "a"},
	}
	s := startedSession(t, ModeReview, qs, saver.reviewLog)

	s.Submit("still wrong")
	s.Advance()

	if _, err := Finalize(context.Background(), s, saver); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(saver.reviewLog) != 1 || saver.reviewLog[0] != 7 {
		t.Errorf("review log = %v, want [7]", saver.reviewLog)
	}
}

func TestFinalize_ExamRecordsHistory(t *testing.T) {
	saver := &memSaver{}
	qs := make([]question.Question, 65)
	for i := range qs {
		subject := "혈액학"
		if i%2 == 0 {
			subject = "조직학"
		}
		qs[i] = question.Question{ID: i + 1, Subject: subject, Type: question.TypeFreeText, Text: "q", Answer: "a"}
	}
	s := startedSession(t, ModeExam, qs, nil)

	// First 50 correct, last 15 wrong.
	for i := 0; i < 65; i++ {
		ans := "a"
		if i >= 50 {
			ans = "x"
		}
		if _, err := s.Submit(ans); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		s.Advance()
	}

	out, err := Finalize(context.Background(), s, saver)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(saver.history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(saver.history))
	}
	entry := saver.history[0]
	if entry.Total != 65 || entry.Correct != 50 {
		t.Errorf("entry = %d/%d, want 50/65", entry.Correct, entry.Total)
	}
	if len(entry.IncorrectIDs) != 15 {
		t.Errorf("incorrect IDs = %d, want 15", len(entry.IncorrectIDs))
	}
	if _, sum := entry.SubjectBreakdown.Totals(); sum != 65 {
		t.Errorf("breakdown totals = %d, want 65", sum)
	}
	if out.HistoryEntry == nil {
		t.Error("outcome must carry the recorded entry")
	}

	// Exam misses land in the review log too.
	if len(saver.reviewLog) != 15 {
		t.Errorf("review log = %d entries, want 15", len(saver.reviewLog))
	}
}

func TestFinalize_SinglePersistsNothing(t *testing.T) {
	saver := &memSaver{reviewLog: []int{9}}
	s := startedSession(t, ModeSingle, threeQuestions()[:1], nil)

	s.Submit("wrong")
	s.Advance()

	if _, err := Finalize(context.Background(), s, saver); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(saver.reviewLog) != 1 || saver.reviewLog[0] != 9 {
		t.Errorf("review log = %v, want untouched [9]", saver.reviewLog)
	}
	if len(saver.stats) != 0 {
		t.Errorf("stats = %v, want untouched", saver.stats)
	}
	if len(saver.history) != 0 {
		t.Error("single-problem run must not record history")
	}
}

func TestFinalize_ExactlyOnce(t *testing.T) {
	saver := &memSaver{}
	s := startedSession(t, ModeExam, threeQuestions(), nil)

	s.Submit("a")
	s.ForceComplete()

	if _, err := Finalize(context.Background(), s, saver); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}
	if _, err := Finalize(context.Background(), s, saver); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Finalize err = %v, want ErrAlreadyFinalized", err)
	}
	if len(saver.history) != 1 {
		t.Errorf("history entries = %d, want exactly 1", len(saver.history))
	}
}
