// Package exam builds simulated national-exam question sets from a fixed
// per-subject blueprint and records finished exam sessions.
package exam

import "time"

// Duration is the time limit of a simulated exam.
const Duration = 65 * time.Minute

// Entry is one blueprint line: how many questions a subject contributes.
type Entry struct {
	Subject string
	Count   int
}

// Blueprint is the ordered per-subject quota defining the exam composition.
// Order is observable: sampled questions are appended in blueprint order.
type Blueprint []Entry

// Total returns the summed question count of the blueprint.
func (b Blueprint) Total() int {
	n := 0
	for _, e := range b {
		n += e.Count
	}
	return n
}

// Default is the 65-question composition of the clinical pathology national
// exam's practical session.
var Default = Blueprint{
	{Subject: "조직학", Count: 9},
	{Subject: "세포학", Count: 7},
	{Subject: "임상화학", Count: 14},
	{Subject: "핵의학", Count: 2},
	{Subject: "혈액학", Count: 11},
	{Subject: "수혈학", Count: 5},
	{Subject: "요화학", Count: 1},
	{Subject: "미생물학", Count: 6},
	{Subject: "진균학", Count: 2},
	{Subject: "바이러스학", Count: 2},
	{Subject: "기생충학", Count: 2},
	{Subject: "혈청학", Count: 4},
}
