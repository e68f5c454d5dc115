package tasks

import (
	"time"

	"teamops-backend/internal/priority"
)

type Task struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`

	UrgencyLevel    int `json:"urgency_level"`
	ImportanceLevel int `json:"importance_level"`
	ComplexityLevel int `json:"complexity_level"`

	InternalDeadline       *time.Time `json:"internal_deadline"`
	ExternalClientDeadline *time.Time `json:"external_client_deadline"`

	EstimatedDuration  string `json:"estimated_duration"`
	DurabilityCategory string `json:"durability_category"`
	SkillTags          string `json:"skill_tags,omitempty"`

	OwnerID   *string `json:"owner_id"`
	OwnerName string  `json:"owner_name,omitempty"`
	OwnerRole string  `json:"owner_role,omitempty"`

	RecommendedOwnerID   *string  `json:"recommended_owner_id,omitempty"`
	AssignmentConfidence *float64 `json:"assignment_confidence,omitempty"`

	FlaggedImmediate   bool     `json:"flagged_immediate"`
	RequiresMultiHand  bool     `json:"requires_multi_hand"`
	RecommendedCadence string   `json:"recommended_cadence,omitempty"`
	RecommendedPlan    []string `json:"recommended_plan,omitempty"`

	LastCheckinAt *time.Time `json:"last_checkin_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Engine converts the stored row into the snapshot the priority engine
// computes from.
func (t Task) Engine() priority.Task {
	return priority.Task{
		ID:                     t.ID,
		UrgencyLevel:           t.UrgencyLevel,
		ImportanceLevel:        t.ImportanceLevel,
		InternalDeadline:       t.InternalDeadline,
		ExternalClientDeadline: t.ExternalClientDeadline,
		EstimatedDuration:      t.EstimatedDuration,
		DurabilityCategory:     t.DurabilityCategory,
		ComplexityLevel:        t.ComplexityLevel,
		Status:                 t.Status,
		ProgressPercent:        t.ProgressPercent,
		SkillTags:              t.SkillTags,
	}
}

// Computed carries the derived priority fields. They are recomputed on
// every read and never treated as stored truth.
type Computed struct {
	PriorityScore    int               `json:"priorityScore"`
	Quadrant         priority.Quadrant `json:"quadrant"`
	DeadlinePressure float64           `json:"deadlinePressure"`
	DaysRemaining    *int              `json:"daysRemaining"`
	IsClientDeadline bool              `json:"isClientDeadline"`
}

type EnrichedTask struct {
	Task
	Computed Computed `json:"_computed"`
}

// Enrich attaches the computed priority fields to a task row.
func Enrich(t Task, now time.Time) EnrichedTask {
	engine := t.Engine()
	pressure := priority.CalculateDeadlinePressure(engine.InternalDeadline, engine.ExternalClientDeadline, now)
	return EnrichedTask{
		Task: t,
		Computed: Computed{
			PriorityScore:    priority.CalculatePriorityScore(engine, now),
			Quadrant:         priority.TaskQuadrant(engine),
			DeadlinePressure: pressure.Score,
			DaysRemaining:    pressure.DaysRemaining,
			IsClientDeadline: pressure.IsClientDeadline,
		},
	}
}
