// Package filter provides the order-preserving in-memory predicates shared
// by the inquiry, document, and payment list endpoints. Callers hand in
// field selectors so the engine stays ignorant of record shapes.
package filter

import "strings"

// ByStatus keeps the records whose discriminant equals status exactly,
// case-sensitively. An empty status keeps everything; survivors stay in
// their original relative order.
func ByStatus[R any](records []R, status string, statusOf func(R) string) []R {
	if status == "" {
		return records
	}
	kept := make([]R, 0, len(records))
	for _, record := range records {
		if statusOf(record) == status {
			kept = append(kept, record)
		}
	}
	return kept
}

// ByText keeps the records where at least one selector value contains the
// query, ignoring case. An empty or whitespace-only query keeps everything.
// Selectors returning "" never match, so optional fields need no special
// handling by the caller.
func ByText[R any](records []R, query string, selectors ...func(R) string) []R {
	if strings.TrimSpace(query) == "" {
		return records
	}
	q := strings.ToLower(query)
	kept := make([]R, 0, len(records))
	for _, record := range records {
		for _, selector := range selectors {
			if strings.Contains(strings.ToLower(selector(record)), q) {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}

// CountByStatus tallies records per requested status. Every requested
// status is present in the result, zero when nothing carries it; statuses
// outside the requested set are not reported.
func CountByStatus[R any](records []R, statusOf func(R) string, statuses ...string) map[string]int {
	counts := make(map[string]int, len(statuses))
	for _, status := range statuses {
		counts[status] = 0
	}
	for _, record := range records {
		status := statusOf(record)
		if _, ok := counts[status]; ok {
			counts[status]++
		}
	}
	return counts
}
