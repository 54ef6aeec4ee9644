package stats

import (
	"reflect"
	"testing"
)

func TestFold_Counts(t *testing.T) {
	s := Fold(nil, []Attempt{
		{Subject: "혈액학", Correct: true},
		{Subject: "혈액학", Correct: false},
		{Subject: "조직학", Correct: true},
	})

	if got := s["혈액학"]; got != (Tally{Correct: 1, Total: 2}) {
		t.Errorf("혈액학 = %+v", got)
	}
	if got := s["조직학"]; got != (Tally{Correct: 1, Total: 1}) {
		t.Errorf("조직학 = %+v", got)
	}
}

func TestFold_DoesNotMutateInput(t *testing.T) {
	base := SubjectStats{"혈액학": {Correct: 1, Total: 1}}
	Fold(base, []Attempt{{Subject: "혈액학", Correct: false}})
	if base["혈액학"] != (Tally{Correct: 1, Total: 1}) {
		t.Errorf("input mutated: %+v", base["혈액학"])
	}
}

func TestFold_OrderIndependent(t *testing.T) {
	a := []Attempt{{Subject: "x", Correct: true}, {Subject: "y", Correct: false}}
	b := []Attempt{{Subject: "y", Correct: true}, {Subject: "x", Correct: false}}

	ab := Fold(Fold(nil, a), b)
	ba := Fold(Fold(nil, b), a)
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("fold order matters: %v vs %v", ab, ba)
	}
}

func TestOverall_ZeroWhenEmpty(t *testing.T) {
	var s SubjectStats
	if got := s.Overall(); got != 0 {
		t.Errorf("Overall = %v, want 0", got)
	}
	s = SubjectStats{"x": {Correct: 0, Total: 0}}
	if got := s.Overall(); got != 0 {
		t.Errorf("Overall = %v, want 0", got)
	}
}

func TestOverall_Range(t *testing.T) {
	s := SubjectStats{
		"x": {Correct: 3, Total: 4},
		"y": {Correct: 1, Total: 4},
	}
	got := s.Overall()
	if got < 0 || got > 100 {
		t.Fatalf("Overall = %v, out of [0,100]", got)
	}
	if got != 50 {
		t.Errorf("Overall = %v, want 50", got)
	}
}

func TestWithSubjects_SeedsZeroEntries(t *testing.T) {
	s := SubjectStats{"x": {Correct: 2, Total: 3}}
	seeded := s.WithSubjects([]string{"x", "y"})

	if seeded["x"] != (Tally{Correct: 2, Total: 3}) {
		t.Errorf("x = %+v, existing entry clobbered", seeded["x"])
	}
	if tally, ok := seeded["y"]; !ok || tally != (Tally{}) {
		t.Errorf("y = %+v, want zero tally", tally)
	}
}

func TestExtremes_ThresholdFiltersNoise(t *testing.T) {
	s := SubjectStats{
		"noisy":  {Correct: 1, Total: 1},  // 100% but below MinAttempts
		"strong": {Correct: 9, Total: 10}, // 90%
		"weak":   {Correct: 2, Total: 10}, // 20%
	}

	weakest, strongest, ok := s.Extremes()
	if !ok {
		t.Fatal("expected qualifying subjects")
	}
	if weakest.Subject != "weak" {
		t.Errorf("weakest = %s, want weak", weakest.Subject)
	}
	if strongest.Subject != "strong" {
		t.Errorf("strongest = %s, want strong", strongest.Subject)
	}
}

func TestExtremes_NoneQualify(t *testing.T) {
	s := SubjectStats{"x": {Correct: 3, Total: 5}}
	_, _, ok := s.Extremes()
	if ok {
		t.Error("expected ok=false below MinAttempts")
	}
}

func TestExtremes_TieBreaksByName(t *testing.T) {
	s := SubjectStats{
		"b": {Correct: 5, Total: 10},
		"a": {Correct: 5, Total: 10},
	}
	weakest, strongest, ok := s.Extremes()
	if !ok {
		t.Fatal("expected qualifying subjects")
	}
	if weakest.Subject != "a" || strongest.Subject != "a" {
		t.Errorf("tie break = (%s, %s), want (a, a)", weakest.Subject, strongest.Subject)
	}
}

func TestRanked_SortedByAccuracy(t *testing.T) {
	s := SubjectStats{
		"low":  {Correct: 1, Total: 10},
		"high": {Correct: 9, Total: 10},
		"mid":  {Correct: 5, Total: 10},
	}
	ranked := s.Ranked()
	want := []string{"high", "mid", "low"}
	for i, name := range want {
		if ranked[i].Subject != name {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Subject, name)
		}
	}
}
