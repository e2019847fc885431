package entities

import "sort"

// SortForReview orders submissions oldest-first by created_at, with a
// stable tie-break on submission_id so equal timestamps never reorder
// between reads.
func SortForReview(items []Submission) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SubmissionID < items[j].SubmissionID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
