package reports

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"teamops-backend/internal/auth"
	"teamops-backend/internal/notify"
	"teamops-backend/internal/priority"
)

type taskSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	OwnerName  string     `json:"owner_name,omitempty"`
	Score      int        `json:"priority_score"`
	Tier       string     `json:"tier"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	IsExternal bool       `json:"is_external"`
}

type memberStat struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OpenTasks int    `json:"open_tasks"`
	MaxTasks  int    `json:"max_concurrent_tasks"`
	IsActive  bool   `json:"is_active"`
}

// newTaskSummary derives the display row from the stored priority
// inputs. The score is always recomputed, never persisted.
func newTaskSummary(id, title, owner string, et priority.Task, now time.Time) taskSummary {
	score := priority.CalculatePriorityScore(et, now)
	s := taskSummary{
		ID:        id,
		Title:     title,
		Status:    et.Status,
		OwnerName: owner,
		Score:     score,
		Tier:      TierFromScore(score),
	}
	if et.InternalDeadline != nil || et.ExternalClientDeadline != nil {
		due := et.InternalDeadline
		if due == nil || (et.ExternalClientDeadline != nil && et.ExternalClientDeadline.Before(*due)) {
			due = et.ExternalClientDeadline
			s.IsExternal = true
		}
		s.DueAt = due
	}
	return s
}

const summaryColumns = `
	t.id, t.title, t.status, COALESCE(m.name, ''),
	t.urgency_level, t.importance_level,
	t.internal_deadline, t.external_client_deadline,
	t.estimated_duration, t.durability_category,
	t.complexity_level, t.progress_percent`

func scanSummaries(rows *sql.Rows, now time.Time) ([]taskSummary, error) {
	defer rows.Close()
	result := []taskSummary{}
	for rows.Next() {
		var (
			id, title, owner string
			et               priority.Task
		)
		if err := rows.Scan(
			&id, &title, &et.Status, &owner,
			&et.UrgencyLevel, &et.ImportanceLevel,
			&et.InternalDeadline, &et.ExternalClientDeadline,
			&et.EstimatedDuration, &et.DurabilityCategory,
			&et.ComplexityLevel, &et.ProgressPercent,
		); err != nil {
			return nil, err
		}
		result = append(result, newTaskSummary(id, title, owner, et, now))
	}
	return result, rows.Err()
}

func sortByScore(list []taskSummary) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
}

func sortByDue(list []taskSummary) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DueAt == nil || list[j].DueAt == nil {
			return list[j].DueAt == nil && list[i].DueAt != nil
		}
		return list[i].DueAt.Before(*list[j].DueAt)
	})
}

// DashboardHandler aggregates the numbers the home screen needs in one
// round trip: status counts, the hot lists, per-member load and hours
// logged this month.
func DashboardHandler(dbx *sql.DB, notifier *notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		now := time.Now().UTC()

		statusCounts := map[string]int{}
		rows, err := dbx.QueryContext(ctx, `
			SELECT status, COUNT(*) FROM tasks GROUP BY status
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				rows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			statusCounts[status] = count
		}
		rows.Close()

		rows, err = dbx.QueryContext(ctx, `
			SELECT `+summaryColumns+`
			FROM tasks t
			LEFT JOIN members m ON m.id = t.owner_id
			WHERE t.status <> 'DONE'
			  AND (t.internal_deadline < $1 OR t.external_client_deadline < $1)
		`, now)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		overdue, err := scanSummaries(rows, now)
		if err != nil {
			http.Error(w, "scan error", http.StatusInternalServerError)
			return
		}
		sortByScore(overdue)

		soon := now.Add(72 * time.Hour)
		rows, err = dbx.QueryContext(ctx, `
			SELECT `+summaryColumns+`
			FROM tasks t
			LEFT JOIN members m ON m.id = t.owner_id
			WHERE t.status <> 'DONE'
			  AND (
				(t.internal_deadline >= $1 AND t.internal_deadline < $2)
				OR (t.external_client_deadline >= $1 AND t.external_client_deadline < $2)
			  )
		`, now, soon)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		dueSoon, err := scanSummaries(rows, now)
		if err != nil {
			http.Error(w, "scan error", http.StatusInternalServerError)
			return
		}
		sortByDue(dueSoon)

		rows, err = dbx.QueryContext(ctx, `
			SELECT `+summaryColumns+`
			FROM tasks t
			LEFT JOIN members m ON m.id = t.owner_id
			WHERE t.status = 'BLOCKED'
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		blocked, err := scanSummaries(rows, now)
		if err != nil {
			http.Error(w, "scan error", http.StatusInternalServerError)
			return
		}
		sortByScore(blocked)

		rows, err = dbx.QueryContext(ctx, `
			SELECT m.id, m.name, m.max_concurrent_tasks, m.is_active,
				COUNT(t.id) FILTER (WHERE t.status NOT IN ('DONE')) AS open_tasks
			FROM members m
			LEFT JOIN tasks t ON t.owner_id = m.id
			GROUP BY m.id, m.name, m.max_concurrent_tasks, m.is_active
			ORDER BY m.name ASC
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		memberStats := []memberStat{}
		for rows.Next() {
			var s memberStat
			if err := rows.Scan(&s.ID, &s.Name, &s.MaxTasks, &s.IsActive, &s.OpenTasks); err != nil {
				rows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			memberStats = append(memberStats, s)
		}
		rows.Close()

		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		var totalMinutes, billableMinutes int
		_ = dbx.QueryRowContext(ctx, `
			SELECT
				COALESCE(SUM(duration_minutes), 0),
				COALESCE(SUM(duration_minutes) FILTER (WHERE billable), 0)
			FROM time_entries
			WHERE date >= $1
		`, monthStart).Scan(&totalMinutes, &billableMinutes)

		notifications, err := notifier.Recent(ctx, 10)
		if err != nil {
			notifications = []map[string]any{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generated_at":  now,
			"status_counts": statusCounts,
			"overdue":       overdue,
			"due_soon":      dueSoon,
			"blocked":       blocked,
			"members":       memberStats,
			"hours_this_month": map[string]any{
				"total":    float64(totalMinutes) / 60,
				"billable": float64(billableMinutes) / 60,
			},
			"recent_notifications": notifications,
		})
	}
}
