package timelog

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"teamops-backend/internal/activity"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/priority"
)

type Entry struct {
	ID              string    `json:"id"`
	MemberID        string    `json:"member_id"`
	MemberName      string    `json:"member_name,omitempty"`
	TaskID          *string   `json:"task_id"`
	TaskTitle       string    `json:"task_title,omitempty"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        string    `json:"category"`
	Billable        bool      `json:"billable"`
	HourlyRate      float64   `json:"hourly_rate"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()

		query := `
			SELECT
				e.id, e.member_id, m.name,
				e.task_id, COALESCE(t.title,''),
				e.date, e.duration_minutes, e.category, e.billable,
				e.hourly_rate, COALESCE(e.notes,''), e.created_at
			FROM time_entries e
			JOIN members m ON m.id = e.member_id
			LEFT JOIN tasks t ON t.id = e.task_id
			WHERE 1=1`
		var args []any

		if memberID := q.Get("memberId"); memberID != "" {
			args = append(args, memberID)
			query += ` AND e.member_id = $1`
		}
		if month := q.Get("month"); month != "" {
			// month is YYYY-MM; filter to [start, next month)
			start, err := time.Parse("2006-01", month)
			if err != nil {
				http.Error(w, "invalid month", http.StatusBadRequest)
				return
			}
			args = append(args, start)
			startIdx := len(args)
			args = append(args, start.AddDate(0, 1, 0))
			endIdx := len(args)
			query += ` AND e.date >= $` + strconv.Itoa(startIdx) + ` AND e.date < $` + strconv.Itoa(endIdx)
		}
		query += ` ORDER BY e.date DESC`

		rows, err := dbx.Query(query, args...)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		result := []Entry{}
		for rows.Next() {
			var e Entry
			if err := rows.Scan(
				&e.ID, &e.MemberID, &e.MemberName,
				&e.TaskID, &e.TaskTitle,
				&e.Date, &e.DurationMinutes, &e.Category, &e.Billable,
				&e.HourlyRate, &e.Notes, &e.CreatedAt,
			); err != nil {
				http.Error(w, "scan error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			result = append(result, e)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, "db rows error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func CreateHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			MemberID        string   `json:"member_id"`
			TaskID          *string  `json:"task_id"`
			Date            string   `json:"date"`
			DurationMinutes int      `json:"duration_minutes"`
			Category        string   `json:"category"`
			Billable        bool     `json:"billable"`
			HourlyRate      *float64 `json:"hourly_rate"`
			Notes           string   `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.MemberID == "" || body.DurationMinutes <= 0 {
			http.Error(w, "member_id & duration_minutes required", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		if body.Category == "" {
			body.Category = "INTERNAL"
		}

		// default the rate from the member when billable
		rate := 0.0
		if body.HourlyRate != nil {
			rate = *body.HourlyRate
		} else if body.Billable {
			if err := dbx.QueryRow(`
				SELECT hourly_rate FROM members WHERE id = $1
			`, body.MemberID).Scan(&rate); err != nil {
				rate = 100
			}
		}

		id := uuid.NewString()
		_, err = dbx.Exec(`
			INSERT INTO time_entries (
				id, member_id, task_id, date, duration_minutes,
				category, billable, hourly_rate, notes
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, id, body.MemberID, body.TaskID, date, body.DurationMinutes,
			body.Category, body.Billable, rate, body.Notes)
		if err != nil {
			http.Error(w, "db insert error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(r.Context(), dbx, env, activity.EventTimeLogged, map[string]any{
			"entry_id": id,
			"minutes":  body.DurationMinutes,
			"billable": body.Billable,
		}, activity.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":               id,
			"member_id":        body.MemberID,
			"task_id":          body.TaskID,
			"date":             date,
			"duration_minutes": body.DurationMinutes,
			"category":         body.Category,
			"billable":         body.Billable,
			"hourly_rate":      rate,
			"notes":            body.Notes,
		})
	}
}

func DeleteHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		if _, err := dbx.Exec(`DELETE FROM time_entries WHERE id = $1`, body.ID); err != nil {
			http.Error(w, "db delete error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}
}

// EfficiencyHandler compares a task's duration estimate with the time
// logged against it so far.
func EfficiencyHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID := r.URL.Query().Get("taskId")
		if taskID == "" {
			http.Error(w, "taskId required", http.StatusBadRequest)
			return
		}

		var estimatedDuration string
		if err := dbx.QueryRow(`
			SELECT estimated_duration FROM tasks WHERE id = $1
		`, taskID).Scan(&estimatedDuration); err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		var totalMinutes int
		_ = dbx.QueryRow(`
			SELECT COALESCE(SUM(duration_minutes), 0)
			FROM time_entries WHERE task_id = $1
		`, taskID).Scan(&totalMinutes)

		eff := priority.CalculateEfficiency(estimatedDuration, totalMinutes)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task_id":            taskID,
			"estimated_duration": estimatedDuration,
			"actual_minutes":     totalMinutes,
			"efficiency":         eff,
		})
	}
}
