package priority

import (
	"math"
	"time"
)

// CalculateDeadlinePressure scores how hard the nearest deadline is
// pushing, on a 0-100 scale. Client deadlines get a 10% premium capped
// at 100. The internal deadline is checked before the client one, so a
// tie on the exact same instant resolves to the internal deadline.
func CalculateDeadlinePressure(internalDeadline, clientDeadline *time.Time, now time.Time) DeadlinePressure {
	type deadline struct {
		at       time.Time
		isClient bool
	}

	var deadlines []deadline
	if internalDeadline != nil {
		deadlines = append(deadlines, deadline{at: *internalDeadline, isClient: false})
	}
	if clientDeadline != nil {
		deadlines = append(deadlines, deadline{at: *clientDeadline, isClient: true})
	}

	if len(deadlines) == 0 {
		return DeadlinePressure{Score: 0, DaysRemaining: nil, IsClientDeadline: false}
	}

	closest := deadlines[0]
	for _, d := range deadlines[1:] {
		if d.at.Before(closest.at) {
			closest = d
		}
	}

	// Raw fractional days drive the staircase; the returned value is
	// rounded up for display.
	daysRemaining := closest.at.Sub(now).Hours() / 24

	var score float64
	switch {
	case daysRemaining <= 0:
		score = 100 // overdue
	case daysRemaining <= 1:
		score = 95
	case daysRemaining <= 2:
		score = 85
	case daysRemaining <= 3:
		score = 70
	case daysRemaining <= 7:
		score = 50
	case daysRemaining <= 14:
		score = 30
	case daysRemaining <= 30:
		score = 15
	default:
		score = 5
	}

	if closest.isClient {
		score = math.Min(100, score*1.1)
	}

	days := int(math.Ceil(daysRemaining))
	return DeadlinePressure{
		Score:            score,
		DaysRemaining:    &days,
		IsClientDeadline: closest.isClient,
	}
}
