package exam

import (
	"fmt"
	"math/rand"

	"github.com/seojin/labquiz/internal/question"
)

// InsufficientPoolError reports a subject whose question pool cannot satisfy
// its blueprint quota. The exam cannot start; no partial set is produced.
type InsufficientPoolError struct {
	Subject   string
	Required  int
	Available int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("subject %q: need %d questions, bank has %d",
		e.Subject, e.Required, e.Available)
}

// Sample draws a stratified random question set matching the blueprint:
// exactly Count questions per entry, drawn without replacement, appended in
// blueprint order. Each subject's draw is shuffled internally but the
// concatenation is not reshuffled across subjects.
func Sample(questions []question.Question, bp Blueprint, rng *rand.Rand) ([]question.Question, error) {
	pools := make(map[string][]question.Question)
	for i := range questions {
		subject := questions[i].Subject
		pools[subject] = append(pools[subject], questions[i])
	}

	result := make([]question.Question, 0, bp.Total())
	for _, entry := range bp {
		pool := pools[entry.Subject]
		if len(pool) < entry.Count {
			return nil, &InsufficientPoolError{
				Subject:   entry.Subject,
				Required:  entry.Count,
				Available: len(pool),
			}
		}
		shuffled := make([]question.Question, len(pool))
		copy(shuffled, pool)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		result = append(result, shuffled[:entry.Count]...)
	}

	// Unreachable given the per-entry checks, verified anyway so a corrupted
	// blueprint can never start a short exam.
	if len(result) != bp.Total() {
		return nil, fmt.Errorf("sampled %d questions, blueprint requires %d", len(result), bp.Total())
	}
	return result, nil
}
