package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePriorityScore_NoDeadline(t *testing.T) {
	task := Task{UrgencyLevel: 4, ImportanceLevel: 3, EstimatedDuration: "S"}
	// 80*0.3 + 60*0.3 + 0*0.3 + 80*0.1 = 50
	assert.Equal(t, 50, CalculatePriorityScore(task, testNow))
}

func TestCalculatePriorityScore_WithDeadline(t *testing.T) {
	task := Task{
		UrgencyLevel:      5,
		ImportanceLevel:   5,
		EstimatedDuration: "XS",
		InternalDeadline:  tp(testNow.Add(5 * 24 * time.Hour)),
	}
	// 100*0.3 + 100*0.3 + 50*0.3 + 100*0.1 = 85
	assert.Equal(t, 85, CalculatePriorityScore(task, testNow))
}

func TestCalculatePriorityScore_UnknownDurationDefaults(t *testing.T) {
	task := Task{UrgencyLevel: 3, ImportanceLevel: 3, EstimatedDuration: "???"}
	// 60*0.3 + 60*0.3 + 0 + 50*0.1 = 41
	assert.Equal(t, 41, CalculatePriorityScore(task, testNow))
}

func TestCalculatePriorityScore_MonotoneInUrgency(t *testing.T) {
	prev := -1
	for u := 1; u <= 5; u++ {
		task := Task{UrgencyLevel: u, ImportanceLevel: 3, EstimatedDuration: "M"}
		score := CalculatePriorityScore(task, testNow)
		if score <= prev {
			t.Fatalf("score not increasing at urgency %d: %d <= %d", u, score, prev)
		}
		prev = score
	}
}

func TestCalculatePriorityScore_MonotoneInImportance(t *testing.T) {
	prev := -1
	for i := 1; i <= 5; i++ {
		task := Task{UrgencyLevel: 3, ImportanceLevel: i, EstimatedDuration: "M"}
		score := CalculatePriorityScore(task, testNow)
		if score <= prev {
			t.Fatalf("score not increasing at importance %d: %d <= %d", i, score, prev)
		}
		prev = score
	}
}

func TestCalculatePriorityScore_ShorterTasksWinTies(t *testing.T) {
	quick := Task{UrgencyLevel: 4, ImportanceLevel: 4, EstimatedDuration: "XS"}
	long := Task{UrgencyLevel: 4, ImportanceLevel: 4, EstimatedDuration: "XL"}
	assert.Greater(t, CalculatePriorityScore(quick, testNow), CalculatePriorityScore(long, testNow))
}
