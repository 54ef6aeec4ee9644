package quiz

// Mode selects a session's behavior. Exactly one mode is active per session;
// invalid flag combinations are unrepresentable by construction.
type Mode int

const (
	// ModePractice runs a plain practice session: results feed cumulative
	// subject stats and misses feed the review log.
	ModePractice Mode = iota

	// ModeReview replays the review log; corrected questions are removed
	// from it and stats are untouched to avoid double counting.
	ModeReview

	// ModeSingle runs a single question from the problem list. Nothing is
	// persisted.
	ModeSingle

	// ModeExam runs a timed blueprint exam: no per-question feedback pause,
	// a history entry on finish, misses feed the review log.
	ModeExam
)

func (m Mode) String() string {
	switch m {
	case ModePractice:
		return "practice"
	case ModeReview:
		return "review"
	case ModeSingle:
		return "single"
	case ModeExam:
		return "exam"
	default:
		return "unknown"
	}
}
