package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/seojin/labquiz/internal/question"
)

func threeQuestions() []question.Question {
	return []question.Question{
		{ID: 1, Subject: "혈액학", Type: question.TypeFreeText, Text: "q1", Answer: "a"},
		{ID: 2, Subject: "혈액학", Type: question.TypeFreeText, Text: "q2", Answer: "b"},
		{ID: 3, Subject: "조직학", Type: question.TypeFreeText, Text: "q3", Answer: "c"},
	}
}

// fakeClock advances a fixed step on every read for deterministic timing.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func startedSession(t *testing.T, mode Mode, qs []question.Question, log []int) *Session {
	t.Helper()
	s := New(mode, question.PeriodPractical, qs, log)
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return s
}

func TestBegin_EmptyQueue(t *testing.T) {
	s := New(ModePractice, question.PeriodPractical, nil, nil)
	if err := s.Begin(); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSubmit_EmptyAnswerRejected(t *testing.T) {
	s := startedSession(t, ModePractice, threeQuestions(), nil)

	_, err := s.Submit("")
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("err = %v, want ErrNoAnswer", err)
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Error("empty submit must not change phase")
	}
	if len(s.MissedIDs()) != 0 || s.Score() != 0 {
		t.Error("empty submit must not mutate session state")
	}
}

func TestSubmit_OutsideAwaitingPhase(t *testing.T) {
	s := startedSession(t, ModePractice, threeQuestions(), nil)
	if _, err := s.Submit("a"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Second submit before advancing is rejected.
	if _, err := s.Submit("a"); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("err = %v, want ErrNotAwaiting", err)
	}
}

func TestSubmit_ExactEqualityGrading(t *testing.T) {
	qs := []question.Question{
		{ID: 1, Subject: "s", Type: question.TypeFreeText, Text: "q", Answer: "Answer"},
	}
	s := startedSession(t, ModePractice, qs, nil)

	fb, err := s.Submit("answer") // case differs: incorrect
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Correct {
		t.Error("grading must be case-sensitive exact equality")
	}
}

func TestPracticeRun_CorrectIncorrectCorrect(t *testing.T) {
	s := startedSession(t, ModePractice, threeQuestions(), nil)

	answers := []string{"a", "wrong", "c"}
	for i, ans := range answers {
		fb, err := s.Submit(ans)
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if fb.AutoAdvance {
			t.Error("practice mode must not auto-advance")
		}
		s.Advance()
	}

	if s.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", s.Phase())
	}
	if s.Score() != 2 {
		t.Errorf("score = %d, want 2", s.Score())
	}
	missed := s.MissedIDs()
	if len(missed) != 1 || missed[0] != 2 {
		t.Errorf("missed = %v, want [2]", missed)
	}
}

func TestMissedIDs_NoDuplicates(t *testing.T) {
	// The same question presented twice and missed twice is recorded once.
	q := question.Question{ID: 7, Subject: "s", Type: question.TypeFreeText, Text: "q", Answer: "a"}
	s := startedSession(t, ModePractice, []question.Question{q, q}, nil)

	s.Submit("x")
	s.Advance()
	s.Submit("y")
	s.Advance()

	if missed := s.MissedIDs(); len(missed) != 1 {
		t.Errorf("missed = %v, want single entry", missed)
	}
}

func TestReviewMode_CorrectionRemovesFromLog(t *testing.T) {
	qs := threeQuestions()
	s := startedSession(t, ModeReview, qs, []int{1, 2, 3})

	s.Submit("a") // correct: removed
	s.Advance()
	s.Submit("nope") // still wrong: stays
	s.Advance()
	s.Submit("c") // correct: removed
	s.Advance()

	log := s.ReviewLog()
	if len(log) != 1 || log[0] != 2 {
		t.Errorf("working log = %v, want [2]", log)
	}
}

func TestExamMode_AutoAdvances(t *testing.T) {
	s := startedSession(t, ModeExam, threeQuestions(), nil)

	fb, err := s.Submit("a")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.AutoAdvance {
		t.Error("exam mode must auto-advance")
	}
}

func TestSingleMode_ImmediatelyCompletes(t *testing.T) {
	s := startedSession(t, ModeSingle, threeQuestions()[:1], nil)

	if _, err := s.Submit("a"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Advance() {
		t.Error("single-problem session must complete after one answer")
	}
	if s.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", s.Phase())
	}
}

func TestSlowest_FirstEncounteredTieBreak(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Second}
	s := New(ModePractice, question.PeriodPractical, threeQuestions(), nil)
	s.now = clock.now
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Every answer takes exactly one step, so all elapsed times tie.
	s.Submit("a")
	s.Advance()
	s.Submit("b")
	s.Advance()
	s.Submit("c")
	s.Advance()

	slowest := s.slowest()
	if slowest == nil {
		t.Fatal("expected a slowest question")
	}
	if slowest.QuestionID != 1 {
		t.Errorf("slowest = %d, want first-encountered (1)", slowest.QuestionID)
	}
}
