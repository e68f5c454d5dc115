package priority

import (
	"sort"
	"time"
)

// Levels of 4 and above count as "high" on both axes.
const quadrantThreshold = 3.5

// TaskQuadrant maps urgency/importance onto the Eisenhower grid. It
// depends on those two fields only.
func TaskQuadrant(task Task) Quadrant {
	isUrgent := float64(task.UrgencyLevel) >= quadrantThreshold
	isImportant := float64(task.ImportanceLevel) >= quadrantThreshold

	switch {
	case isUrgent && isImportant:
		return QuadrantDoNow
	case !isUrgent && isImportant:
		return QuadrantSchedule
	case isUrgent && !isImportant:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// GroupTasksByQuadrant partitions non-done tasks into the four buckets
// and sorts each bucket by priority score, highest first. All four keys
// are always present.
func GroupTasksByQuadrant(tasks []Task, now time.Time) map[Quadrant][]Task {
	grouped := map[Quadrant][]Task{
		QuadrantDoNow:     {},
		QuadrantSchedule:  {},
		QuadrantDelegate:  {},
		QuadrantEliminate: {},
	}

	for _, task := range tasks {
		if task.Status == StatusDone {
			continue
		}
		q := TaskQuadrant(task)
		grouped[q] = append(grouped[q], task)
	}

	for q := range grouped {
		bucket := grouped[q]
		sort.SliceStable(bucket, func(i, j int) bool {
			return CalculatePriorityScore(bucket[i], now) > CalculatePriorityScore(bucket[j], now)
		})
	}

	return grouped
}
