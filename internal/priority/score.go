package priority

import (
	"math"
	"time"
)

// Weights for the four priority factors. Duration gets a small slice so
// quick wins break ties between otherwise equal tasks.
const (
	weightUrgency    = 0.30
	weightImportance = 0.30
	weightDeadline   = 0.30
	weightDuration   = 0.10
)

// Shorter tasks score higher. Unknown codes fall back to 50.
var durationScores = map[string]float64{
	"XS": 100,
	"S":  80,
	"M":  60,
	"L":  40,
	"XL": 20,
}

// CalculatePriorityScore combines urgency, importance, deadline pressure
// and duration into a single 0-100 ranking score. The score only orders
// tasks; it must be recomputed whenever any input changes.
func CalculatePriorityScore(task Task, now time.Time) int {
	pressure := CalculateDeadlinePressure(task.InternalDeadline, task.ExternalClientDeadline, now)

	urgencyScore := float64(task.UrgencyLevel) / 5 * 100
	importanceScore := float64(task.ImportanceLevel) / 5 * 100

	durationScore, ok := durationScores[task.EstimatedDuration]
	if !ok {
		durationScore = 50
	}

	score := urgencyScore*weightUrgency +
		importanceScore*weightImportance +
		pressure.Score*weightDeadline +
		durationScore*weightDuration

	return int(math.Round(score))
}
