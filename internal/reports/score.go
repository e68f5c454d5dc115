package reports

// Monthly performance scoring. Delivery and progress are worth up to 40
// points each, improvement up to 20; the total caps at 100.

const (
	maxDeliveryScore    = 40.0
	maxProgressScore    = 40.0
	maxImprovementScore = 20.0
)

// OnTimeRate is the percentage of completed tasks that beat their
// deadline. Tasks without a deadline count as on time; no completions
// at all count as a perfect rate.
func OnTimeRate(onTime, completed int) float64 {
	if completed == 0 {
		return 100
	}
	return float64(onTime) / float64(completed) * 100
}

func DeliveryScore(onTimeRate float64) float64 {
	score := onTimeRate / 100 * maxDeliveryScore
	if score > maxDeliveryScore {
		score = maxDeliveryScore
	}
	return score
}

func ProgressScore(tasksCompleted, highPriorityCompleted int, billableHours float64) float64 {
	score := float64(tasksCompleted)*5 + float64(highPriorityCompleted)*5 + billableHours/4
	if score > maxProgressScore {
		score = maxProgressScore
	}
	return score
}

// ImprovementScore compares this month against the previous report.
// Without a previous month the member gets the neutral midpoint.
func ImprovementScore(onTimeRate, prevOnTimeRate float64, tasksCompleted, prevTasksCompleted int, hasPrev bool) float64 {
	if !hasPrev {
		return 10
	}
	improvement := (onTimeRate-prevOnTimeRate)/10 + float64(tasksCompleted-prevTasksCompleted)
	score := 10 + improvement
	if score < 0 {
		score = 0
	}
	if score > maxImprovementScore {
		score = maxImprovementScore
	}
	return score
}

func PerformanceScore(delivery, progress, improvement float64) float64 {
	score := delivery + progress + improvement
	if score > 100 {
		score = 100
	}
	return score
}

// Bonus pays billable hours at the base rate with a performance
// multiplier between 1x and 2x.
func Bonus(billableHours, performanceScore, bonusRate float64) float64 {
	multiplier := 1 + performanceScore/100
	return billableHours * bonusRate * multiplier
}

// TierFromScore buckets a 0-100 priority score into display tiers.
func TierFromScore(score int) string {
	switch {
	case score >= 80:
		return "P0"
	case score >= 60:
		return "P1"
	case score >= 40:
		return "P2"
	default:
		return "P3"
	}
}
