package notify

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamops-backend/internal/activity"
)

// Notification types stored in the notifications table.
const (
	TypeOverdueAlert    = "OVERDUE_ALERT"
	TypeProgressStall   = "PROGRESS_STALL"
	TypeBlockedAlert    = "BLOCKED_ALERT"
	TypeMeetingReminder = "MEETING_REMINDER"
	TypeAchievement     = "ACHIEVEMENT"
	TypeLeaderboard     = "LEADERBOARD"
	TypeBroadcast       = "BROADCAST"
	TypeCustom          = "CUSTOM"
)

// Service logs notifications and dispatches them over SMS. The decision
// that an alert condition exists is the caller's; Service only handles
// preferences, the log, and delivery.
type Service struct {
	DB     *sql.DB
	Twilio *TwilioClient
}

func NewService(db *sql.DB, twilio *TwilioClient) *Service {
	return &Service{DB: db, Twilio: twilio}
}

// Send records and delivers one SMS to a member. Returns true when the
// message went out (or demo mode accepted it). Member preferences can
// suppress overdue and meeting notifications.
func (s *Service) Send(ctx context.Context, memberID, notifType, message string) (bool, error) {
	var (
		phone           sql.NullString
		name            string
		notifyOnOverdue bool
		notifyOnMeeting bool
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT phone, name, notify_on_overdue, notify_on_meeting
		FROM members WHERE id = $1
	`, memberID).Scan(&phone, &name, &notifyOnOverdue, &notifyOnMeeting)
	if err != nil {
		return false, err
	}

	if !phone.Valid || strings.TrimSpace(phone.String) == "" {
		log.Printf("[notify] no phone number for member %s", memberID)
		return false, nil
	}

	if notifType == TypeOverdueAlert && !notifyOnOverdue {
		return false, nil
	}
	if notifType == TypeMeetingReminder && !notifyOnMeeting {
		return false, nil
	}

	notifID := uuid.NewString()
	subject := strings.ReplaceAll(notifType, "_", " ")
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO notifications (id, member_id, type, channel, subject, message, status)
		VALUES ($1, $2, $3, 'SMS', $4, $5, 'PENDING')
	`, notifID, memberID, notifType, subject, message)
	if err != nil {
		return false, err
	}

	sendErr := s.Twilio.SendSMS(ctx, phone.String, message)
	if sendErr != nil {
		log.Printf("[notify] twilio error for member %s: %v", memberID, sendErr)
		_, _ = s.DB.ExecContext(ctx, `
			UPDATE notifications SET status = 'FAILED' WHERE id = $1
		`, notifID)
		return false, nil
	}

	_, _ = s.DB.ExecContext(ctx, `
		UPDATE notifications SET status = 'SENT', sent_at = $2 WHERE id = $1
	`, notifID, time.Now().UTC())

	_ = activity.Log(ctx, s.DB, activity.Envelope{}, activity.EventSMSSent, map[string]any{
		"notification_id": notifID,
		"type":            notifType,
	}, "")

	if !s.Twilio.Enabled() {
		log.Printf("[notify] demo SMS to %s: %s", name, message)
	}
	return true, nil
}

// RecentlySent reports whether a notification of this type already went
// to the member inside the window. Used by the automation sweep to
// avoid spamming.
func (s *Service) RecentlySent(ctx context.Context, memberID, notifType string, window time.Duration) (bool, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE member_id = $1 AND type = $2 AND created_at >= $3
	`, memberID, notifType, time.Now().UTC().Add(-window)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Recent returns the latest notifications for the dashboard.
func (s *Service) Recent(ctx context.Context, limit int) ([]map[string]any, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT n.id, n.member_id, m.name, n.type, n.subject, n.message, n.status, n.created_at
		FROM notifications n
		JOIN members m ON m.id = n.member_id
		ORDER BY n.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		var (
			id, memberID, memberName, typ, subject, message, status string
			createdAt                                               time.Time
		)
		if err := rows.Scan(&id, &memberID, &memberName, &typ, &subject, &message, &status, &createdAt); err != nil {
			return nil, err
		}
		result = append(result, map[string]any{
			"id":          id,
			"member_id":   memberID,
			"member_name": memberName,
			"type":        typ,
			"subject":     subject,
			"message":     message,
			"status":      status,
			"created_at":  createdAt,
		})
	}
	return result, rows.Err()
}
