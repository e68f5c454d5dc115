package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverdueTaskMessage(t *testing.T) {
	msg := OverdueTaskMessage("Ana", "Quarterly deck", 3)
	assert.Contains(t, msg, "Ana")
	assert.Contains(t, msg, `"Quarterly deck"`)
	assert.Contains(t, msg, "3 day(s) overdue")
}

func TestLeaderboardMessage_RankOneGetsSpecialSuffix(t *testing.T) {
	first := LeaderboardMessage("Ana", 1, 92)
	assert.Contains(t, first, "#1")
	assert.Contains(t, first, "92 points")
	assert.Contains(t, first, "leading the pack")

	rest := LeaderboardMessage("Bo", 4, 61)
	assert.Contains(t, rest, "#4")
	assert.Contains(t, rest, "Keep pushing")
}

func TestMeetingReminderMessage(t *testing.T) {
	msg := MeetingReminderMessage("daily standup", "09:30")
	assert.Contains(t, msg, "daily standup")
	assert.Contains(t, msg, "09:30")
}

func TestBlockerAlertMessage(t *testing.T) {
	msg := BlockerAlertMessage("Ana", "API migration")
	assert.Contains(t, msg, "Ana")
	assert.Contains(t, msg, `"API migration"`)
	assert.Contains(t, msg, "blocked")
}

func TestNoCheckinMessage(t *testing.T) {
	msg := NoCheckinMessage("Ana", 48)
	assert.Contains(t, msg, "48+ hours")
}
