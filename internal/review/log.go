// Package review maintains the persistent set of question IDs the learner has
// answered incorrectly and not yet corrected.
package review

import "sort"

// Merge returns the deduplicated, ascending-sorted union of log and ids.
// Neither input is modified; Merge(Merge(l, m), m) == Merge(l, m).
func Merge(log []int, ids []int) []int {
	seen := make(map[int]bool, len(log)+len(ids))
	merged := make([]int, 0, len(log)+len(ids))
	for _, id := range log {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	sort.Ints(merged)
	return merged
}

// Remove returns log without id. Removing an absent id is a no-op, not an
// error. The input is not modified.
func Remove(log []int, id int) []int {
	out := make([]int, 0, len(log))
	for _, v := range log {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Contains reports whether id is in log.
func Contains(log []int, id int) bool {
	for _, v := range log {
		if v == id {
			return true
		}
	}
	return false
}
