package reports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamops-backend/internal/priority"
)

var dashNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNewTaskSummary_RecomputesScore(t *testing.T) {
	due := dashNow.Add(24 * time.Hour)
	et := priority.Task{
		UrgencyLevel: 5, ImportanceLevel: 4,
		InternalDeadline:  &due,
		EstimatedDuration: "S", ComplexityLevel: 2,
		Status: priority.StatusInProgress,
	}

	s := newTaskSummary("t1", "Ship it", "Ana", et, dashNow)

	assert.Equal(t, priority.CalculatePriorityScore(et, dashNow), s.Score)
	assert.Equal(t, TierFromScore(s.Score), s.Tier)
	require.NotNil(t, s.DueAt)
	assert.Equal(t, due, *s.DueAt)
	assert.False(t, s.IsExternal)
}

func TestNewTaskSummary_ClientDeadlineWinsWhenEarlier(t *testing.T) {
	internal := dashNow.Add(96 * time.Hour)
	client := dashNow.Add(24 * time.Hour)
	et := priority.Task{
		UrgencyLevel: 3, ImportanceLevel: 3,
		InternalDeadline:       &internal,
		ExternalClientDeadline: &client,
		EstimatedDuration:      "M",
	}

	s := newTaskSummary("t1", "Deliver", "", et, dashNow)

	require.NotNil(t, s.DueAt)
	assert.Equal(t, client, *s.DueAt)
	assert.True(t, s.IsExternal)
}

func TestNewTaskSummary_SameInstantStaysInternal(t *testing.T) {
	due := dashNow.Add(24 * time.Hour)
	et := priority.Task{
		InternalDeadline:       &due,
		ExternalClientDeadline: &due,
	}

	s := newTaskSummary("t1", "Tie", "", et, dashNow)

	assert.False(t, s.IsExternal)
}

func TestNewTaskSummary_NoDeadline(t *testing.T) {
	s := newTaskSummary("t1", "Backlog", "", priority.Task{UrgencyLevel: 2, ImportanceLevel: 2}, dashNow)
	assert.Nil(t, s.DueAt)
	assert.False(t, s.IsExternal)
}

func TestSortByScore(t *testing.T) {
	list := []taskSummary{
		{ID: "a", Score: 20},
		{ID: "b", Score: 90},
		{ID: "c", Score: 55},
	}
	sortByScore(list)
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestSortByDue(t *testing.T) {
	early := dashNow.Add(time.Hour)
	late := dashNow.Add(48 * time.Hour)
	list := []taskSummary{
		{ID: "none"},
		{ID: "late", DueAt: &late},
		{ID: "early", DueAt: &early},
	}
	sortByDue(list)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
	assert.Equal(t, "none", list[2].ID)
}

func TestMemberStatJSONUsesConcurrentTasks(t *testing.T) {
	b, err := json.Marshal(memberStat{ID: "m1", Name: "Ana", MaxTasks: 5})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"max_concurrent_tasks":5`)
}
