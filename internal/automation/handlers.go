package automation

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"teamops-backend/internal/activity"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/notify"
)

// Alerts are deduplicated per member and type inside this window.
const dedupWindow = 12 * time.Hour

type alertResult struct {
	Type    string `json:"type"`
	Member  string `json:"member"`
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// SweepHandler is meant to be hit by a cron job (e.g. hourly). It scans
// for overdue, stalled and blocked tasks and notifies the people who
// need to act.
func SweepHandler(dbx *sql.DB, notifier *notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		now := time.Now().UTC()
		results := []alertResult{}

		// 1) overdue tasks with an owner
		rows, err := dbx.QueryContext(ctx, `
			SELECT t.id, t.title, t.owner_id, m.name,
				LEAST(
					COALESCE(t.internal_deadline, 'infinity'::timestamptz),
					COALESCE(t.external_client_deadline, 'infinity'::timestamptz)
				) AS due
			FROM tasks t
			JOIN members m ON m.id = t.owner_id
			WHERE t.status <> 'DONE'
			  AND (t.internal_deadline < $1 OR t.external_client_deadline < $1)
		`, now)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		type overdueTask struct {
			id, title, ownerID, ownerName string
			due                           time.Time
		}
		var overdue []overdueTask
		for rows.Next() {
			var t overdueTask
			if err := rows.Scan(&t.id, &t.title, &t.ownerID, &t.ownerName, &t.due); err != nil {
				rows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			overdue = append(overdue, t)
		}
		rows.Close()

		for _, t := range overdue {
			recent, _ := notifier.RecentlySent(ctx, t.ownerID, notify.TypeOverdueAlert, dedupWindow)
			if recent {
				continue
			}
			daysPast := int(math.Floor(now.Sub(t.due).Hours() / 24))
			msg := notify.OverdueTaskMessage(t.ownerName, t.title, daysPast)
			sent, _ := notifier.Send(ctx, t.ownerID, notify.TypeOverdueAlert, msg)
			results = append(results, alertResult{
				Type: notify.TypeOverdueAlert, Member: t.ownerName, Sent: sent, Message: msg,
			})
		}

		// 2) stalled tasks: in progress with no check-in for 48h+
		twoDaysAgo := now.Add(-48 * time.Hour)
		rows, err = dbx.QueryContext(ctx, `
			SELECT t.id, t.title, t.owner_id, m.name
			FROM tasks t
			JOIN members m ON m.id = t.owner_id
			WHERE t.status = 'IN_PROGRESS'
			  AND (
				t.last_checkin_at < $1
				OR (t.last_checkin_at IS NULL AND t.updated_at < $1)
			  )
		`, twoDaysAgo)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		type stalledTask struct {
			id, title, ownerID, ownerName string
		}
		var stalled []stalledTask
		for rows.Next() {
			var t stalledTask
			if err := rows.Scan(&t.id, &t.title, &t.ownerID, &t.ownerName); err != nil {
				rows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			stalled = append(stalled, t)
		}
		rows.Close()

		for _, t := range stalled {
			recent, _ := notifier.RecentlySent(ctx, t.ownerID, notify.TypeProgressStall, dedupWindow)
			if recent {
				continue
			}
			msg := notify.NoCheckinMessage(t.ownerName, 48)
			sent, _ := notifier.Send(ctx, t.ownerID, notify.TypeProgressStall, msg)
			results = append(results, alertResult{
				Type: notify.TypeProgressStall, Member: t.ownerName, Sent: sent, Message: msg,
			})
		}

		// 3) blocked tasks sitting for 24h+ go to managers as a digest
		type blockedTask struct{ title, ownerName string }
		var blockedTasks []blockedTask
		brows, err := dbx.QueryContext(ctx, `
			SELECT t.title, COALESCE(m.name, 'unassigned')
			FROM tasks t
			LEFT JOIN members m ON m.id = t.owner_id
			WHERE t.status = 'BLOCKED' AND t.updated_at < $1
			ORDER BY t.updated_at ASC
		`, now.Add(-24*time.Hour))
		if err == nil {
			for brows.Next() {
				var b blockedTask
				if err := brows.Scan(&b.title, &b.ownerName); err == nil {
					blockedTasks = append(blockedTasks, b)
				}
			}
			brows.Close()
		}

		if len(blockedTasks) > 0 {
			mrows, err := dbx.QueryContext(ctx, `
				SELECT id, name FROM members
				WHERE is_manager = TRUE AND is_active = TRUE
			`)
			if err == nil {
				type manager struct{ id, name string }
				var managers []manager
				for mrows.Next() {
					var m manager
					if err := mrows.Scan(&m.id, &m.name); err == nil {
						managers = append(managers, m)
					}
				}
				mrows.Close()

				msg := notify.BlockerAlertMessage(blockedTasks[0].ownerName, blockedTasks[0].title)
				if len(blockedTasks) > 1 {
					msg += fmt.Sprintf(" %d more task(s) have been blocked for over 24 hours.", len(blockedTasks)-1)
				}
				for _, m := range managers {
					recent, _ := notifier.RecentlySent(ctx, m.id, notify.TypeBlockedAlert, dedupWindow)
					if recent {
						continue
					}
					sent, _ := notifier.Send(ctx, m.id, notify.TypeBlockedAlert, msg)
					results = append(results, alertResult{
						Type: notify.TypeBlockedAlert, Member: m.name, Sent: sent, Message: msg,
					})
				}
			}
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(ctx, dbx, env, activity.EventAutomationSweep, map[string]any{
			"alerts_processed": len(results),
		}, activity.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":         true,
			"timestamp":       now,
			"alertsProcessed": len(results),
			"alerts":          results,
		})
	}
}

// TriggerHandler sends a manual notification: either one member or a
// BROADCAST to every active member with a phone number.
func TriggerHandler(dbx *sql.DB, notifier *notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Type        string `json:"type"`
			MemberID    string `json:"member_id"`
			Message     string `json:"message"`
			MeetingType string `json:"meeting_type"`
			MeetingTime string `json:"meeting_time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		// meeting reminders can be built from the meeting fields alone
		if body.Message == "" && body.Type == notify.TypeMeetingReminder && body.MeetingTime != "" {
			meetingType := body.MeetingType
			if meetingType == "" {
				meetingType = "team meeting"
			}
			body.Message = notify.MeetingReminderMessage(meetingType, body.MeetingTime)
		}
		if body.Message == "" {
			http.Error(w, "message required", http.StatusBadRequest)
			return
		}

		ctx := r.Context()

		if body.Type == notify.TypeBroadcast {
			rows, err := dbx.QueryContext(ctx, `
				SELECT id, name FROM members
				WHERE is_active = TRUE AND phone IS NOT NULL AND phone <> ''
			`)
			if err != nil {
				http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			defer rows.Close()

			type result struct {
				Name string `json:"name"`
				Sent bool   `json:"sent"`
			}
			results := []result{}
			for rows.Next() {
				var id, name string
				if err := rows.Scan(&id, &name); err != nil {
					http.Error(w, "scan error", http.StatusInternalServerError)
					return
				}
				sent, _ := notifier.Send(ctx, id, notify.TypeBroadcast, body.Message)
				results = append(results, result{Name: name, Sent: sent})
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "results": results})
			return
		}

		if body.MemberID == "" {
			http.Error(w, "member_id required", http.StatusBadRequest)
			return
		}

		notifType := body.Type
		if notifType == "" {
			notifType = notify.TypeCustom
		}

		sent, err := notifier.Send(ctx, body.MemberID, notifType, body.Message)
		if err != nil {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": sent})
	}
}
