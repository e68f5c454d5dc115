package ai

import (
	"fmt"
	"strings"
	"time"

	"teamops-backend/internal/priority"
)

// TaskLine is one task as it appears in the briefing snapshot.
type TaskLine struct {
	Title     string
	Status    string
	OwnerName string
	Score     int
	Quadrant  priority.Quadrant
	Flag      priority.ImmediateFlag
	DueAt     *time.Time
	IsClient  bool
}

// MemberLine is one member's workload in the snapshot.
type MemberLine struct {
	Name      string
	Role      string
	Seniority int
	OpenTasks int
	MaxTasks  int
}

// BuildBriefingPrompt renders the team snapshot and the manager's
// question into the user prompt for the assistant.
func BuildBriefingPrompt(now time.Time, tasks []TaskLine, team []MemberLine, question string) string {
	var b strings.Builder

	b.WriteString("snapshot_time: ")
	b.WriteString(now.Format(time.RFC3339))
	b.WriteString("\n\nTASKS (open, highest priority first):\n")

	if len(tasks) == 0 {
		b.WriteString("(none)\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %q status=%s score=%d quadrant=%s", t.Title, t.Status, t.Score, t.Quadrant)
		if t.OwnerName != "" {
			fmt.Fprintf(&b, " owner=%s", t.OwnerName)
		} else {
			b.WriteString(" owner=UNASSIGNED")
		}
		if t.DueAt != nil {
			kind := "internal"
			if t.IsClient {
				kind = "client"
			}
			fmt.Fprintf(&b, " due=%s(%s)", t.DueAt.Format("2006-01-02"), kind)
		}
		if t.Flag.Flag {
			fmt.Fprintf(&b, " IMMEDIATE(%s)", t.Flag.Reason)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTEAM:\n")
	if len(team) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range team {
		fmt.Fprintf(&b, "- %s (%s, seniority %d): %d/%d open tasks\n",
			m.Name, m.Role, m.Seniority, m.OpenTasks, m.MaxTasks)
	}

	b.WriteString("\nQUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n")

	return b.String()
}
