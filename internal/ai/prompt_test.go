package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"teamops-backend/internal/priority"
)

func TestBuildBriefingPrompt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	prompt := BuildBriefingPrompt(now,
		[]TaskLine{
			{
				Title: "Ship landing page", Status: "IN_PROGRESS", OwnerName: "Ana",
				Score: 85, Quadrant: priority.QuadrantDoNow,
				Flag:  priority.ImmediateFlag{Flag: true, Reason: "client deadline within 48 hours"},
				DueAt: &due, IsClient: true,
			},
			{
				Title: "Tidy backlog", Status: "NOT_STARTED",
				Score: 12, Quadrant: priority.QuadrantEliminate,
			},
		},
		[]MemberLine{
			{Name: "Ana", Role: "designer", Seniority: 3, OpenTasks: 2, MaxTasks: 5},
		},
		"who should I ping first?")

	assert.Contains(t, prompt, `"Ship landing page" status=IN_PROGRESS score=85 quadrant=DO_NOW owner=Ana`)
	assert.Contains(t, prompt, "due=2026-03-11(client)")
	assert.Contains(t, prompt, "IMMEDIATE(client deadline within 48 hours)")
	assert.Contains(t, prompt, "owner=UNASSIGNED")
	assert.Contains(t, prompt, "Ana (designer, seniority 3): 2/5 open tasks")
	assert.Contains(t, prompt, "QUESTION:\nwho should I ping first?")
}

func TestBuildBriefingPrompt_Empty(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prompt := BuildBriefingPrompt(now, nil, nil, "status?")

	assert.Contains(t, prompt, "(none)")
	assert.Contains(t, prompt, "snapshot_time: 2026-03-10T12:00:00Z")
}
