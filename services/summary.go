package services

import (
	"sort"

	"setmore-schedules/models"
)

// Summarize counts every distinct value of field across raw, including rows
// that were never confirmed. Rows without the field count towards "".
// Buckets are ordered by descending count; ties keep first-seen order.
func Summarize(raw []models.RawBooking, field string) []models.ValueCount {
	counts := make([]models.ValueCount, 0)
	index := make(map[string]int)

	for _, r := range raw {
		v := r[field]
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, models.ValueCount{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
