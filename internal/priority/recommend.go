package priority

import "time"

// GetAssignmentRecommendation builds staffing metadata for a task by
// running a chain of independent rules over a default recommendation.
// Rules are not mutually exclusive; each one may append to the
// reasoning and plan.
func GetAssignmentRecommendation(task Task, now time.Time) AssignmentRecommendation {
	rec := AssignmentRecommendation{
		RequiresMultiHand:      false,
		RecommendedSeniority:   2,
		SuggestedCadence:       CadenceDaily,
		SuggestedCollaborators: 0,
		Reasoning:              []string{},
		SuggestedPlan:          []string{},
	}

	pressure := CalculateDeadlinePressure(task.InternalDeadline, task.ExternalClientDeadline, now)

	// Rule 1: very urgent + very complex = joint analysis
	if task.UrgencyLevel >= 4 && task.ComplexityLevel >= 4 {
		rec.RequiresMultiHand = true
		rec.SuggestedCollaborators = 1
		rec.RecommendedSeniority = 4
		rec.Reasoning = append(rec.Reasoning, "urgent+complex needs joint analysis")
		rec.SuggestedPlan = append(rec.SuggestedPlan, "kickoff meeting", "split into owned subtasks")
	}

	// Rule 2: important + hard + long-term = senior/assistant combo
	if task.ImportanceLevel >= 4 && task.ComplexityLevel >= 4 && task.DurabilityCategory == "LONG" {
		rec.RequiresMultiHand = true
		if rec.SuggestedCollaborators < 1 {
			rec.SuggestedCollaborators = 1
		}
		rec.RecommendedSeniority = 4
		rec.Reasoning = append(rec.Reasoning, "important+complex+long-term: senior supervises, assistant executes")
		rec.SuggestedPlan = append(rec.SuggestedPlan,
			"senior defines approach",
			"assistant executes with periodic review",
			"weekly progress check-in",
		)
	}

	// Rule 3: client deadline in 1-2 days
	hourlyFromClientDeadline := false
	if pressure.IsClientDeadline && pressure.DaysRemaining != nil && *pressure.DaysRemaining <= 2 {
		rec.SuggestedCadence = CadenceHourly
		hourlyFromClientDeadline = true
		rec.Reasoning = append(rec.Reasoning, "client deadline under 48h needs frequent check-ins")
		rec.SuggestedPlan = append(rec.SuggestedPlan,
			"confirm exact deliverables with client",
			"check in every 2 hours until delivery",
		)

		if task.ComplexityLevel >= 3 {
			rec.RequiresMultiHand = true
			if rec.SuggestedCollaborators < 1 {
				rec.SuggestedCollaborators = 1
			}
			rec.Reasoning = append(rec.Reasoning, "complexity + short deadline: consider extra support")
		}
	}

	// Rule 4: cadence from deadline pressure, unless rule 3 already
	// forced hourly check-ins
	if !hourlyFromClientDeadline {
		switch {
		case pressure.Score >= 85:
			rec.SuggestedCadence = CadenceHourly
		case pressure.Score >= 50:
			rec.SuggestedCadence = CadenceDaily
		default:
			rec.SuggestedCadence = CadenceWeekly
		}
	}

	// Rule 5: seniority from complexity, clamped against earlier rules
	if task.ComplexityLevel >= 4 {
		if rec.RecommendedSeniority < 4 {
			rec.RecommendedSeniority = 4
		}
		rec.Reasoning = append(rec.Reasoning, "high complexity requires senior experience")
	} else if task.ComplexityLevel <= 2 {
		if rec.RecommendedSeniority > 2 {
			rec.RecommendedSeniority = 2
		}
		rec.Reasoning = append(rec.Reasoning, "simple task appropriate for any level")
	}

	// Rule 6: default plan when no rule produced one
	if len(rec.SuggestedPlan) == 0 {
		if task.EstimatedDuration == "XS" || task.EstimatedDuration == "S" {
			rec.SuggestedPlan = append(rec.SuggestedPlan, "execute directly", "mark complete")
		} else {
			rec.SuggestedPlan = append(rec.SuggestedPlan,
				"review requirements",
				"define specific steps",
				"execute and document progress",
			)
		}
	}

	return rec
}
