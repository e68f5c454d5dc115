package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldFlagImmediate_ClientDeadlineSoon(t *testing.T) {
	task := Task{
		UrgencyLevel:           3,
		ImportanceLevel:        3,
		ExternalClientDeadline: tp(testNow.Add(24 * time.Hour)),
	}
	got := ShouldFlagImmediate(task, testNow)
	assert.True(t, got.Flag)
	assert.Equal(t, "client deadline within 48 hours", got.Reason)
}

func TestShouldFlagImmediate_RuleOrder(t *testing.T) {
	// rules 1 and 2 both match; rule 1 wins
	task := Task{
		UrgencyLevel:           5,
		ImportanceLevel:        5,
		ExternalClientDeadline: tp(testNow.Add(24 * time.Hour)),
	}
	got := ShouldFlagImmediate(task, testNow)
	assert.True(t, got.Flag)
	assert.Equal(t, "client deadline within 48 hours", got.Reason)
}

func TestShouldFlagImmediate_MaxUrgency(t *testing.T) {
	task := Task{UrgencyLevel: 5, ImportanceLevel: 4}
	got := ShouldFlagImmediate(task, testNow)
	assert.True(t, got.Flag)
	assert.Equal(t, "maximum urgency with high importance", got.Reason)

	// importance below 4 does not trigger rule 2
	task.ImportanceLevel = 3
	assert.False(t, ShouldFlagImmediate(task, testNow).Flag)
}

func TestShouldFlagImmediate_Overdue(t *testing.T) {
	task := Task{
		UrgencyLevel:     2,
		ImportanceLevel:  2,
		InternalDeadline: tp(testNow.Add(-24 * time.Hour)),
	}
	got := ShouldFlagImmediate(task, testNow)
	assert.True(t, got.Flag)
	assert.Equal(t, "task overdue", got.Reason)
}

func TestShouldFlagImmediate_BlockedUrgent(t *testing.T) {
	task := Task{UrgencyLevel: 4, ImportanceLevel: 2, Status: StatusBlocked}
	got := ShouldFlagImmediate(task, testNow)
	assert.True(t, got.Flag)
	assert.Equal(t, "blocked with high urgency", got.Reason)

	task.UrgencyLevel = 3
	assert.False(t, ShouldFlagImmediate(task, testNow).Flag)
}

func TestShouldFlagImmediate_ReasonConsistency(t *testing.T) {
	tasks := []Task{
		{UrgencyLevel: 1, ImportanceLevel: 1},
		{UrgencyLevel: 5, ImportanceLevel: 5},
		{UrgencyLevel: 3, ImportanceLevel: 3, InternalDeadline: tp(testNow.Add(10 * 24 * time.Hour))},
		{UrgencyLevel: 4, ImportanceLevel: 1, Status: StatusBlocked},
	}
	for _, task := range tasks {
		got := ShouldFlagImmediate(task, testNow)
		if got.Flag {
			assert.NotEmpty(t, got.Reason)
		} else {
			assert.Empty(t, got.Reason)
		}
	}
}
