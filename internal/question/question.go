package question

import "strings"

// DefaultSubject is assigned to questions whose source record has no subject.
const DefaultSubject = "기타"

// Period identifies one of the exam sessions the trainer covers. Each period
// has its own question file and its own persisted logs and statistics.
type Period string

const (
	// PeriodPractical is the third session (practical, image-based questions).
	PeriodPractical Period = "P3"

	// PeriodTheory covers the first and second sessions (theory questions).
	PeriodTheory Period = "P1_2"
)

// Periods lists all known periods in display order.
var Periods = []Period{PeriodPractical, PeriodTheory}

// Valid reports whether p names a known period.
func (p Period) Valid() bool {
	return p == PeriodPractical || p == PeriodTheory
}

// Label returns the period's display name.
func (p Period) Label() string {
	switch p {
	case PeriodPractical:
		return "3교시 실기"
	case PeriodTheory:
		return "1·2교시 필기"
	default:
		return string(p)
	}
}

// Other returns the opposite period, used by the period toggle.
func (p Period) Other() Period {
	if p == PeriodPractical {
		return PeriodTheory
	}
	return PeriodPractical
}

// Type describes how a question is answered.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeFreeText       Type = "free_text"
)

// Question is a single question bank record. Immutable once loaded; sessions
// hold read-only references into bank subsets.
type Question struct {
	// ID is unique within a period's bank.
	ID int `json:"id"`

	// Subject is the subject name, never empty after loading.
	Subject string `json:"subject"`

	// Type is multiple_choice or free_text.
	Type Type `json:"type"`

	// Text is the question prompt.
	Text string `json:"question"`

	// Options is populated only for multiple choice. Each entry is formatted
	// as "<label>.<text>", e.g. "3.혈소판".
	Options []string `json:"options,omitempty"`

	// Answer is the canonical correct value. For multiple choice this is the
	// label prefix before the first dot of the correct option.
	Answer string `json:"answer"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation"`

	// ImagePath optionally references an image shown with the question.
	ImagePath string `json:"image_path,omitempty"`
}

// OptionLabel extracts the answer label from an option string, i.e. the part
// before the first dot. Returns the whole string if no dot is present.
func OptionLabel(option string) string {
	if i := strings.Index(option, "."); i >= 0 {
		return option[:i]
	}
	return option
}
