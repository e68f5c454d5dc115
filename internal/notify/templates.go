package notify

import "fmt"

// Message templates for outgoing SMS.

func OverdueTaskMessage(memberName, taskTitle string, daysPast int) string {
	return fmt.Sprintf("%s, your task %q is %d day(s) overdue! Please update progress ASAP.",
		memberName, taskTitle, daysPast)
}

func MeetingReminderMessage(meetingType, timeStr string) string {
	return fmt.Sprintf("Reminder: %s starting at %s. Be ready to share your update!", meetingType, timeStr)
}

func ProgressCelebrationMessage(memberName, taskTitle string) string {
	return fmt.Sprintf("Great job %s! You completed %q. Keep crushing it!", memberName, taskTitle)
}

func BlockerAlertMessage(memberName, taskTitle string) string {
	return fmt.Sprintf("%s is blocked on %q. Can anyone help?", memberName, taskTitle)
}

func NoCheckinMessage(memberName string, hours int) string {
	return fmt.Sprintf("%s, you haven't checked in for %d+ hours. Quick update please!", memberName, hours)
}

func LeaderboardMessage(memberName string, rank int, score float64) string {
	suffix := "Keep pushing!"
	if rank == 1 {
		suffix = "You're leading the pack!"
	}
	return fmt.Sprintf("%s, you're #%d on the leaderboard with %.0f points! %s", memberName, rank, score, suffix)
}
