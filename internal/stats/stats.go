// Package stats aggregates per-subject answer tallies across sessions and
// derives summary views from them.
package stats

import "sort"

// MinAttempts is the minimum per-subject sample size before a subject is
// considered for the weakest/strongest analysis. Below this, single sessions
// dominate the signal.
const MinAttempts = 10

// Tally is a correct/total pair for one subject.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the tally's accuracy in percent, 0 when empty.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}

// SubjectStats maps subject name to its cumulative tally.
type SubjectStats map[string]Tally

// Attempt is a single graded answer, the unit folded into SubjectStats.
type Attempt struct {
	Subject string
	Correct bool
}

// Clone returns a copy of s (nil-safe).
func (s SubjectStats) Clone() SubjectStats {
	out := make(SubjectStats, len(s))
	for subject, tally := range s {
		out[subject] = tally
	}
	return out
}

// Fold returns a new SubjectStats with every attempt counted. The input map
// is not modified, so folds compose and are order-independent.
func Fold(s SubjectStats, attempts []Attempt) SubjectStats {
	out := s.Clone()
	for _, a := range attempts {
		tally := out[a.Subject]
		tally.Total++
		if a.Correct {
			tally.Correct++
		}
		out[a.Subject] = tally
	}
	return out
}

// WithSubjects returns a copy of s with a zero tally for every listed subject
// that has no entry yet. Used to seed stats with the active bank's subjects.
func (s SubjectStats) WithSubjects(subjects []string) SubjectStats {
	out := s.Clone()
	for _, subject := range subjects {
		if _, ok := out[subject]; !ok {
			out[subject] = Tally{}
		}
	}
	return out
}

// Totals returns the summed correct and total counts across all subjects.
func (s SubjectStats) Totals() (correct, total int) {
	for _, tally := range s {
		correct += tally.Correct
		total += tally.Total
	}
	return correct, total
}

// Overall returns the overall accuracy in percent across all subjects,
// 0 when there are no attempts.
func (s SubjectStats) Overall() float64 {
	correct, total := s.Totals()
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// SubjectAccuracy is one subject's tally with its derived accuracy, for
// ranked display.
type SubjectAccuracy struct {
	Subject  string
	Correct  int
	Total    int
	Accuracy float64
}

// Ranked returns all subjects sorted by accuracy descending, name ascending
// on ties.
func (s SubjectStats) Ranked() []SubjectAccuracy {
	out := make([]SubjectAccuracy, 0, len(s))
	for subject, tally := range s {
		out = append(out, SubjectAccuracy{
			Subject:  subject,
			Correct:  tally.Correct,
			Total:    tally.Total,
			Accuracy: tally.Accuracy(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy > out[j].Accuracy
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

// Extremes returns the weakest and strongest subjects among those with at
// least MinAttempts attempts. ok is false when no subject qualifies.
// Candidates are scanned in sorted subject order so ties resolve
// deterministically to the first name.
func (s SubjectStats) Extremes() (weakest, strongest SubjectAccuracy, ok bool) {
	names := make([]string, 0, len(s))
	for subject, tally := range s {
		if tally.Total >= MinAttempts {
			names = append(names, subject)
		}
	}
	if len(names) == 0 {
		return SubjectAccuracy{}, SubjectAccuracy{}, false
	}
	sort.Strings(names)

	for i, subject := range names {
		tally := s[subject]
		sa := SubjectAccuracy{
			Subject:  subject,
			Correct:  tally.Correct,
			Total:    tally.Total,
			Accuracy: tally.Accuracy(),
		}
		if i == 0 {
			weakest, strongest = sa, sa
			continue
		}
		if sa.Accuracy < weakest.Accuracy {
			weakest = sa
		}
		if sa.Accuracy > strongest.Accuracy {
			strongest = sa
		}
	}
	return weakest, strongest, true
}
