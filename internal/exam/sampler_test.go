package exam

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/seojin/labquiz/internal/question"
)

// poolOf builds n free-text questions for a subject with IDs starting at base.
func poolOf(subject string, base, n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:      base + i,
			Subject: subject,
			Type:    question.TypeFreeText,
			Text:    "q",
			Answer:  "a",
		}
	}
	return qs
}

func TestSample_MeetsQuotaPerSubject(t *testing.T) {
	bp := Blueprint{
		{Subject: "A", Count: 3},
		{Subject: "B", Count: 2},
	}
	bank := append(poolOf("A", 100, 5), poolOf("B", 200, 4)...)

	got, err := Sample(bank, bp, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != bp.Total() {
		t.Fatalf("len = %d, want %d", len(got), bp.Total())
	}

	counts := make(map[string]int)
	seen := make(map[int]bool)
	for _, q := range got {
		counts[q.Subject]++
		if seen[q.ID] {
			t.Errorf("duplicate question %d in result", q.ID)
		}
		seen[q.ID] = true
	}
	if counts["A"] != 3 || counts["B"] != 2 {
		t.Errorf("per-subject counts = %v, want A:3 B:2", counts)
	}

	// Blueprint order is preserved: all A questions precede all B questions.
	for i, q := range got {
		if i < 3 && q.Subject != "A" {
			t.Errorf("position %d: subject %s, want A", i, q.Subject)
		}
		if i >= 3 && q.Subject != "B" {
			t.Errorf("position %d: subject %s, want B", i, q.Subject)
		}
	}
}

func TestSample_PoolOneShort(t *testing.T) {
	bp := Blueprint{{Subject: "A", Count: 5}}
	bank := poolOf("A", 1, 4)

	got, err := Sample(bank, bp, rand.New(rand.NewSource(1)))
	if got != nil {
		t.Errorf("expected no result, got %d questions", len(got))
	}
	var poolErr *InsufficientPoolError
	if !errors.As(err, &poolErr) {
		t.Fatalf("err = %v, want InsufficientPoolError", err)
	}
	if poolErr.Subject != "A" || poolErr.Required != 5 || poolErr.Available != 4 {
		t.Errorf("error detail = %+v", poolErr)
	}
}

func TestSample_ReportsShortfall(t *testing.T) {
	bp := Blueprint{
		{Subject: "A", Count: 9},
		{Subject: "B", Count: 7},
	}
	bank := append(poolOf("A", 100, 12), poolOf("B", 200, 3)...)

	_, err := Sample(bank, bp, rand.New(rand.NewSource(1)))
	var poolErr *InsufficientPoolError
	if !errors.As(err, &poolErr) {
		t.Fatalf("err = %v, want InsufficientPoolError", err)
	}
	if poolErr.Subject != "B" || poolErr.Required != 7 || poolErr.Available != 3 {
		t.Errorf("error detail = %+v, want B short by 4", poolErr)
	}
}

func TestSample_ExactPoolSize(t *testing.T) {
	bp := Blueprint{{Subject: "A", Count: 4}}
	bank := poolOf("A", 1, 4)

	got, err := Sample(bank, bp, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
}

func TestDefaultBlueprint_Sums(t *testing.T) {
	if got := Default.Total(); got != 65 {
		t.Errorf("Default.Total() = %d, want 65", got)
	}
}
