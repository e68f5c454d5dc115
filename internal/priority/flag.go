package priority

import "time"

// ShouldFlagImmediate decides whether a task must be surfaced for urgent
// attention. Rules are a priority cascade: the first match wins and only
// its reason is reported, since callers surface one headline per task.
func ShouldFlagImmediate(task Task, now time.Time) ImmediateFlag {
	pressure := CalculateDeadlinePressure(task.InternalDeadline, task.ExternalClientDeadline, now)

	// Rule 1: client deadline within 1-2 days
	if pressure.IsClientDeadline && pressure.DaysRemaining != nil && *pressure.DaysRemaining <= 2 {
		return ImmediateFlag{Flag: true, Reason: "client deadline within 48 hours"}
	}

	// Rule 2: maximum urgency (5) and high importance (>=4)
	if task.UrgencyLevel == 5 && task.ImportanceLevel >= 4 {
		return ImmediateFlag{Flag: true, Reason: "maximum urgency with high importance"}
	}

	// Rule 3: overdue
	if pressure.DaysRemaining != nil && *pressure.DaysRemaining <= 0 {
		return ImmediateFlag{Flag: true, Reason: "task overdue"}
	}

	// Rule 4: blocked and urgent
	if task.Status == StatusBlocked && task.UrgencyLevel >= 4 {
		return ImmediateFlag{Flag: true, Reason: "blocked with high urgency"}
	}

	return ImmediateFlag{Flag: false}
}
