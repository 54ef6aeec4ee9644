package question

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoBanksLoaded is returned when no period's question file could be loaded.
var ErrNoBanksLoaded = errors.New("no question banks loaded")

// PeriodUnavailableError reports an attempt to use a period whose question
// file failed to load.
type PeriodUnavailableError struct {
	Period Period
}

func (e *PeriodUnavailableError) Error() string {
	return fmt.Sprintf("period %s is unavailable (question file not loaded)", e.Period)
}

// Bank holds the loaded question collections, one per period. Collections are
// immutable after construction.
type Bank struct {
	collections map[Period][]Question
	byID        map[Period]map[int]*Question
}

// NewBank builds a bank from already-parsed collections. Periods with a nil
// or empty slice are treated as unavailable. At least one period must have
// questions or ErrNoBanksLoaded is returned.
func NewBank(collections map[Period][]Question) (*Bank, error) {
	b := &Bank{
		collections: make(map[Period][]Question),
		byID:        make(map[Period]map[int]*Question),
	}
	for period, questions := range collections {
		if len(questions) == 0 {
			continue
		}
		qs := make([]Question, len(questions))
		copy(qs, questions)
		b.collections[period] = qs

		index := make(map[int]*Question, len(qs))
		for i := range qs {
			index[qs[i].ID] = &qs[i]
		}
		b.byID[period] = index
	}
	if len(b.collections) == 0 {
		return nil, ErrNoBanksLoaded
	}
	return b, nil
}

// Available reports whether the period's collection loaded.
func (b *Bank) Available(period Period) bool {
	return len(b.collections[period]) > 0
}

// Questions returns the period's full question list.
func (b *Bank) Questions(period Period) ([]Question, error) {
	qs, ok := b.collections[period]
	if !ok {
		return nil, &PeriodUnavailableError{Period: period}
	}
	return qs, nil
}

// Subjects returns the unique subject names in the period's bank, sorted for
// display.
func (b *Bank) Subjects(period Period) ([]string, error) {
	qs, ok := b.collections[period]
	if !ok {
		return nil, &PeriodUnavailableError{Period: period}
	}
	seen := make(map[string]bool)
	var subjects []string
	for i := range qs {
		if !seen[qs[i].Subject] {
			seen[qs[i].Subject] = true
			subjects = append(subjects, qs[i].Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// ByID returns the question with the given ID, or nil if absent.
func (b *Bank) ByID(period Period, id int) *Question {
	return b.byID[period][id]
}

// Filter returns the period's questions whose subject is in the given set.
func (b *Bank) Filter(period Period, subjects map[string]bool) ([]Question, error) {
	qs, ok := b.collections[period]
	if !ok {
		return nil, &PeriodUnavailableError{Period: period}
	}
	var out []Question
	for i := range qs {
		if subjects[qs[i].Subject] {
			out = append(out, qs[i])
		}
	}
	return out, nil
}

// ForIDs returns the period's questions whose IDs are in the given list,
// preserving bank order. IDs that no longer exist in the bank are skipped.
func (b *Bank) ForIDs(period Period, ids []int) ([]Question, error) {
	qs, ok := b.collections[period]
	if !ok {
		return nil, &PeriodUnavailableError{Period: period}
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Question
	for i := range qs {
		if want[qs[i].ID] {
			out = append(out, qs[i])
		}
	}
	return out, nil
}
