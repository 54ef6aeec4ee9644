package exam

import (
	"time"

	"github.com/seojin/labquiz/internal/stats"
)

// HistoryEntry is one finished exam session. Entries are append-only; the
// JSON field names match the trainer's long-lived persisted format.
type HistoryEntry struct {
	Date             time.Time          `json:"date"`
	Total            int                `json:"total"`
	Correct          int                `json:"correct"`
	IncorrectIDs     []int              `json:"incorrectIds"`
	SubjectBreakdown stats.SubjectStats `json:"subjectBreakdown"`
}

// Accuracy returns the entry's score in percent, 0 when Total is 0.
func (e HistoryEntry) Accuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Total) * 100
}
