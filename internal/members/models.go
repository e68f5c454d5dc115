package members

import "time"

type Member struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Role               string    `json:"role"`
	Timezone           string    `json:"timezone,omitempty"`
	HourlyRate         float64   `json:"hourly_rate"`
	SkillTags          string    `json:"skill_tags,omitempty"`
	SeniorityLevel     int       `json:"seniority_level"`
	MaxConcurrentTasks int       `json:"max_concurrent_tasks"`
	IsManager          bool      `json:"is_manager"`
	IsActive           bool      `json:"is_active"`
	NotifyOnOverdue    bool      `json:"notify_on_overdue"`
	NotifyOnMeeting    bool      `json:"notify_on_meeting"`
	OpenTasks          int       `json:"open_tasks"`
	CreatedAt          time.Time `json:"created_at"`
}
