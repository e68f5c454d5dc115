package priority

import "time"

// Task statuses as stored in the tasks table.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusBlocked    = "BLOCKED"
	StatusDone       = "DONE"
)

// Quadrant is one of the four Eisenhower-style priority buckets.
type Quadrant string

const (
	QuadrantDoNow     Quadrant = "DO_NOW"
	QuadrantSchedule  Quadrant = "SCHEDULE"
	QuadrantDelegate  Quadrant = "DELEGATE"
	QuadrantEliminate Quadrant = "ELIMINATE"
)

// Cadence is how often the assignee should report progress.
type Cadence string

const (
	CadenceHourly Cadence = "HOURLY"
	CadenceDaily  Cadence = "DAILY"
	CadenceWeekly Cadence = "WEEKLY"
)

// Task is the snapshot the engine computes from. Deadlines are nil when
// not set; "no deadline" is a distinct state from "deadline is now".
type Task struct {
	ID                     string
	UrgencyLevel           int
	ImportanceLevel        int
	InternalDeadline       *time.Time
	ExternalClientDeadline *time.Time
	EstimatedDuration      string
	DurabilityCategory     string
	ComplexityLevel        int
	Status                 string
	ProgressPercent        int
	SkillTags              string
}

// Member is a candidate from the roster. OpenTasks is a snapshot count
// supplied by the caller; the engine does not track assignment state.
type Member struct {
	ID                 string
	Name               string
	Role               string
	SkillTags          string
	SeniorityLevel     int
	MaxConcurrentTasks int
	OpenTasks          int
	IsActive           bool
}

// DeadlinePressure is the result of CalculateDeadlinePressure.
// DaysRemaining is rounded up and nil when no deadline exists.
type DeadlinePressure struct {
	Score            float64 `json:"score"`
	DaysRemaining    *int    `json:"daysRemaining"`
	IsClientDeadline bool    `json:"isClientDeadline"`
}

// ImmediateFlag marks a task that needs urgent attention, with the
// headline reason of the first rule that fired.
type ImmediateFlag struct {
	Flag   bool   `json:"flag"`
	Reason string `json:"reason,omitempty"`
}

// AssignmentRecommendation is staffing metadata accumulated by the
// recommendation rule chain.
type AssignmentRecommendation struct {
	RequiresMultiHand      bool     `json:"requiresMultiHand"`
	RecommendedSeniority   int      `json:"recommendedSeniority"`
	SuggestedCadence       Cadence  `json:"suggestedCadence"`
	SuggestedCollaborators int      `json:"suggestedCollaborators"`
	Reasoning              []string `json:"reasoning"`
	SuggestedPlan          []string `json:"suggestedPlan"`
}

// OwnerSuggestion is the best-ranked candidate for a task.
type OwnerSuggestion struct {
	MemberID   string  `json:"memberId"`
	MemberName string  `json:"memberName"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
