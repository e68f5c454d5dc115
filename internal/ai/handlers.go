package ai

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"teamops-backend/internal/activity"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/members"
	"teamops-backend/internal/priority"
)

// AskHandler answers a free-form question about the team. It snapshots
// open tasks and the roster, feeds both to the assistant and returns
// the reply. 503 when no API key is configured.
func AskHandler(dbx *sql.DB, client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !client.Enabled() {
			http.Error(w, "assistant not configured", http.StatusServiceUnavailable)
			return
		}

		var body struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Question == "" {
			http.Error(w, "question required", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		now := time.Now().UTC()

		rows, err := dbx.QueryContext(ctx, `
			SELECT t.id, t.title, t.status, COALESCE(m.name, ''),
				t.urgency_level, t.importance_level,
				t.internal_deadline, t.external_client_deadline,
				t.estimated_duration, t.durability_category,
				t.complexity_level, t.progress_percent
			FROM tasks t
			LEFT JOIN members m ON m.id = t.owner_id
			WHERE t.status <> 'DONE'
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		var taskLines []TaskLine
		for rows.Next() {
			var (
				et       priority.Task
				title    string
				owner    string
				internal sql.NullTime
				external sql.NullTime
			)
			if err := rows.Scan(
				&et.ID, &title, &et.Status, &owner,
				&et.UrgencyLevel, &et.ImportanceLevel,
				&internal, &external,
				&et.EstimatedDuration, &et.DurabilityCategory,
				&et.ComplexityLevel, &et.ProgressPercent,
			); err != nil {
				rows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			if internal.Valid {
				d := internal.Time
				et.InternalDeadline = &d
			}
			if external.Valid {
				d := external.Time
				et.ExternalClientDeadline = &d
			}

			pressure := priority.CalculateDeadlinePressure(et.InternalDeadline, et.ExternalClientDeadline, now)
			line := TaskLine{
				Title:     title,
				Status:    et.Status,
				OwnerName: owner,
				Score:     priority.CalculatePriorityScore(et, now),
				Quadrant:  priority.TaskQuadrant(et),
				Flag:      priority.ShouldFlagImmediate(et, now),
				IsClient:  pressure.IsClientDeadline,
			}
			if et.InternalDeadline != nil || et.ExternalClientDeadline != nil {
				due := et.InternalDeadline
				if due == nil || (et.ExternalClientDeadline != nil && et.ExternalClientDeadline.Before(*due)) {
					due = et.ExternalClientDeadline
				}
				line.DueAt = due
			}
			taskLines = append(taskLines, line)
		}
		rows.Close()

		sort.SliceStable(taskLines, func(i, j int) bool {
			return taskLines[i].Score > taskLines[j].Score
		})

		roster, err := members.Roster(dbx)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		team := make([]MemberLine, 0, len(roster))
		for _, m := range roster {
			if !m.IsActive {
				continue
			}
			team = append(team, MemberLine{
				Name:      m.Name,
				Role:      m.Role,
				Seniority: m.SeniorityLevel,
				OpenTasks: m.OpenTasks,
				MaxTasks:  m.MaxConcurrentTasks,
			})
		}

		prompt := BuildBriefingPrompt(now, taskLines, team, body.Question)
		answer, err := client.Ask(ctx, briefingSystemPrompt, prompt)
		if err != nil {
			http.Error(w, "assistant error: "+err.Error(), http.StatusBadGateway)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(ctx, dbx, env, activity.EventBriefingAsked, map[string]any{
			"question_length": len(body.Question),
			"tasks_in_scope":  len(taskLines),
		}, activity.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"question": body.Question,
			"answer":   answer,
			"asked_at": now,
		})
	}
}
