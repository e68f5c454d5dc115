package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskQuadrant_TruthTable(t *testing.T) {
	tests := []struct {
		urgency    int
		importance int
		want       Quadrant
	}{
		{5, 5, QuadrantDoNow},
		{4, 4, QuadrantDoNow},
		{2, 4, QuadrantSchedule},
		{1, 5, QuadrantSchedule},
		{4, 2, QuadrantDelegate},
		{5, 1, QuadrantDelegate},
		{3, 3, QuadrantEliminate}, // both below the 3.5 threshold
		{1, 1, QuadrantEliminate},
	}

	for _, tt := range tests {
		got := TaskQuadrant(Task{UrgencyLevel: tt.urgency, ImportanceLevel: tt.importance})
		assert.Equalf(t, tt.want, got, "urgency=%d importance=%d", tt.urgency, tt.importance)
	}
}

func TestTaskQuadrant_IgnoresOtherFields(t *testing.T) {
	base := Task{UrgencyLevel: 4, ImportanceLevel: 2}
	loaded := base
	loaded.ComplexityLevel = 5
	loaded.Status = StatusBlocked
	loaded.EstimatedDuration = "XL"
	loaded.InternalDeadline = tp(testNow)

	assert.Equal(t, TaskQuadrant(base), TaskQuadrant(loaded))
}

func TestGroupTasksByQuadrant(t *testing.T) {
	tasks := []Task{
		{ID: "a", UrgencyLevel: 5, ImportanceLevel: 5, EstimatedDuration: "XL"},
		{ID: "b", UrgencyLevel: 4, ImportanceLevel: 4, EstimatedDuration: "XS"},
		{ID: "c", UrgencyLevel: 2, ImportanceLevel: 5, EstimatedDuration: "M"},
		{ID: "d", UrgencyLevel: 5, ImportanceLevel: 2, EstimatedDuration: "M"},
		{ID: "e", UrgencyLevel: 1, ImportanceLevel: 1, EstimatedDuration: "M"},
		{ID: "done", UrgencyLevel: 5, ImportanceLevel: 5, Status: StatusDone},
	}

	grouped := GroupTasksByQuadrant(tasks, testNow)

	// all four buckets present
	assert.Len(t, grouped, 4)

	// DONE tasks never appear, everything else appears exactly once
	seen := map[string]int{}
	total := 0
	for _, bucket := range grouped {
		for _, task := range bucket {
			assert.NotEqual(t, StatusDone, task.Status)
			seen[task.ID]++
			total++
		}
	}
	assert.Equal(t, 5, total)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "task %s appears %d times", id, n)
	}

	// DO_NOW sorted by score descending: b (XS) outranks a (XL)
	doNow := grouped[QuadrantDoNow]
	assert.Equal(t, []string{"b", "a"}, []string{doNow[0].ID, doNow[1].ID})

	assert.Equal(t, "c", grouped[QuadrantSchedule][0].ID)
	assert.Equal(t, "d", grouped[QuadrantDelegate][0].ID)
	assert.Equal(t, "e", grouped[QuadrantEliminate][0].ID)
}

func TestGroupTasksByQuadrant_Empty(t *testing.T) {
	grouped := GroupTasksByQuadrant(nil, time.Now())
	assert.Len(t, grouped, 4)
	for q, bucket := range grouped {
		assert.Emptyf(t, bucket, "quadrant %s", q)
	}
}
