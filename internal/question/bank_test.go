package question

import (
	"errors"
	"testing"
)

func testQuestions() []Question {
	return []Question{
		{ID: 1, Subject: "혈액학", Type: TypeMultipleChoice, Text: "q1", Options: []string{"1.a", "2.b"}, Answer: "1"},
		{ID: 2, Subject: "조직학", Type: TypeFreeText, Text: "q2", Answer: "x"},
		{ID: 3, Subject: "혈액학", Type: TypeFreeText, Text: "q3", Answer: "y"},
	}
}

func TestNewBank_AllEmpty(t *testing.T) {
	_, err := NewBank(map[Period][]Question{
		PeriodPractical: nil,
		PeriodTheory:    {},
	})
	if !errors.Is(err, ErrNoBanksLoaded) {
		t.Fatalf("err = %v, want ErrNoBanksLoaded", err)
	}
}

func TestNewBank_PartialLoad(t *testing.T) {
	b, err := NewBank(map[Period][]Question{
		PeriodPractical: testQuestions(),
	})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	if !b.Available(PeriodPractical) {
		t.Error("expected practical period to be available")
	}
	if b.Available(PeriodTheory) {
		t.Error("expected theory period to be unavailable")
	}

	_, err = b.Questions(PeriodTheory)
	var unavail *PeriodUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want PeriodUnavailableError", err)
	}
	if unavail.Period != PeriodTheory {
		t.Errorf("Period = %s, want %s", unavail.Period, PeriodTheory)
	}
}

func TestSubjects_SortedUnique(t *testing.T) {
	b, err := NewBank(map[Period][]Question{PeriodPractical: testQuestions()})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	subjects, err := b.Subjects(PeriodPractical)
	if err != nil {
		t.Fatalf("Subjects: %v", err)
	}
	want := []string{"조직학", "혈액학"}
	if len(subjects) != len(want) {
		t.Fatalf("Subjects = %v, want %v", subjects, want)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Errorf("Subjects[%d] = %s, want %s", i, subjects[i], want[i])
		}
	}
}

func TestByID(t *testing.T) {
	b, err := NewBank(map[Period][]Question{PeriodPractical: testQuestions()})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	q := b.ByID(PeriodPractical, 2)
	if q == nil || q.Text != "q2" {
		t.Errorf("ByID(2) = %+v, want q2", q)
	}
	if b.ByID(PeriodPractical, 99) != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestFilter(t *testing.T) {
	b, err := NewBank(map[Period][]Question{PeriodPractical: testQuestions()})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	got, err := b.Filter(PeriodPractical, map[string]bool{"혈액학": true})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, q := range got {
		if q.Subject != "혈액학" {
			t.Errorf("unexpected subject %s", q.Subject)
		}
	}
}

func TestForIDs_SkipsMissing(t *testing.T) {
	b, err := NewBank(map[Period][]Question{PeriodPractical: testQuestions()})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	got, err := b.ForIDs(PeriodPractical, []int{3, 42, 1})
	if err != nil {
		t.Fatalf("ForIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestOptionLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3.혈소판", "3"},
		{"1.a.b", "1"},
		{"nodot", "nodot"},
	}
	for _, c := range cases {
		if got := OptionLabel(c.in); got != c.want {
			t.Errorf("OptionLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
