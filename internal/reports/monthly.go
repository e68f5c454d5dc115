package reports

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"teamops-backend/internal/auth"
	"teamops-backend/internal/notify"
)

const defaultBonusRate = 25.0

type MonthlyReport struct {
	ID                    string    `json:"id"`
	MemberID              string    `json:"member_id"`
	MemberName            string    `json:"member_name"`
	Month                 string    `json:"month"`
	TasksCompleted        int       `json:"tasks_completed"`
	HighPriorityCompleted int       `json:"high_priority_completed"`
	OnTimeRate            float64   `json:"on_time_rate"`
	TotalHours            float64   `json:"total_hours"`
	BillableHours         float64   `json:"billable_hours"`
	PerformanceScore      float64   `json:"performance_score"`
	BonusAmount           float64   `json:"bonus_amount"`
	Rank                  int       `json:"rank"`
	GeneratedAt           time.Time `json:"generated_at"`
}

// bonusRate reads the configured rate from settings, falling back to
// the default when the row is missing.
func bonusRate(dbx *sql.DB) float64 {
	var raw string
	if err := dbx.QueryRow(`SELECT value FROM settings WHERE key = 'bonus_rate'`).Scan(&raw); err != nil {
		return defaultBonusRate
	}
	var rate float64
	if err := json.Unmarshal([]byte(raw), &rate); err != nil || rate <= 0 {
		return defaultBonusRate
	}
	return rate
}

func MonthlyListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().UTC().Format("2006-01")
		}

		rows, err := dbx.Query(`
			SELECT r.id, r.member_id, m.name, r.month,
				r.tasks_completed, r.high_priority_completed, r.on_time_rate,
				r.total_hours, r.billable_hours,
				r.performance_score, r.bonus_amount, r.rank, r.generated_at
			FROM monthly_reports r
			JOIN members m ON m.id = r.member_id
			WHERE r.month = $1
			ORDER BY r.rank ASC
		`, month)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		result := []MonthlyReport{}
		for rows.Next() {
			var rep MonthlyReport
			if err := rows.Scan(
				&rep.ID, &rep.MemberID, &rep.MemberName, &rep.Month,
				&rep.TasksCompleted, &rep.HighPriorityCompleted, &rep.OnTimeRate,
				&rep.TotalHours, &rep.BillableHours,
				&rep.PerformanceScore, &rep.BonusAmount, &rep.Rank, &rep.GeneratedAt,
			); err != nil {
				http.Error(w, "scan error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			result = append(result, rep)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, "db rows error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// GenerateHandler computes the monthly report for every active member,
// ranks them by performance score and optionally texts each member
// their leaderboard position.
func GenerateHandler(dbx *sql.DB, notifier *notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Month             string `json:"month"`
			SendNotifications bool   `json:"send_notifications"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Month == "" {
			body.Month = time.Now().UTC().Format("2006-01")
		}
		start, err := time.Parse("2006-01", body.Month)
		if err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		end := start.AddDate(0, 1, 0)
		prevMonth := start.AddDate(0, -1, 0).Format("2006-01")
		rate := bonusRate(dbx)

		ctx := r.Context()

		mrows, err := dbx.QueryContext(ctx, `
			SELECT id, name FROM members WHERE is_active = TRUE
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		type member struct{ id, name string }
		var team []member
		for mrows.Next() {
			var m member
			if err := mrows.Scan(&m.id, &m.name); err != nil {
				mrows.Close()
				http.Error(w, "scan error", http.StatusInternalServerError)
				return
			}
			team = append(team, m)
		}
		mrows.Close()

		reports := make([]MonthlyReport, 0, len(team))
		now := time.Now().UTC()

		for _, m := range team {
			var completed, highPriority, onTime int
			err := dbx.QueryRowContext(ctx, `
				SELECT
					COUNT(*),
					COUNT(*) FILTER (WHERE urgency_level >= 4),
					COUNT(*) FILTER (
						WHERE (internal_deadline IS NULL AND external_client_deadline IS NULL)
						OR completed_at <= LEAST(
							COALESCE(internal_deadline, 'infinity'::timestamptz),
							COALESCE(external_client_deadline, 'infinity'::timestamptz)
						)
					)
				FROM tasks
				WHERE owner_id = $1 AND status = 'DONE'
				  AND completed_at >= $2 AND completed_at < $3
			`, m.id, start, end).Scan(&completed, &highPriority, &onTime)
			if err != nil {
				http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
				return
			}

			var totalMinutes, billableMinutes int
			_ = dbx.QueryRowContext(ctx, `
				SELECT
					COALESCE(SUM(duration_minutes), 0),
					COALESCE(SUM(duration_minutes) FILTER (WHERE billable), 0)
				FROM time_entries
				WHERE member_id = $1 AND date >= $2 AND date < $3
			`, m.id, start, end).Scan(&totalMinutes, &billableMinutes)

			totalHours := float64(totalMinutes) / 60
			billableHours := float64(billableMinutes) / 60
			onTimeRate := OnTimeRate(onTime, completed)

			var prevRate float64
			var prevCompleted int
			hasPrev := true
			err = dbx.QueryRowContext(ctx, `
				SELECT on_time_rate, tasks_completed
				FROM monthly_reports
				WHERE member_id = $1 AND month = $2
			`, m.id, prevMonth).Scan(&prevRate, &prevCompleted)
			if err != nil {
				hasPrev = false
			}

			score := PerformanceScore(
				DeliveryScore(onTimeRate),
				ProgressScore(completed, highPriority, billableHours),
				ImprovementScore(onTimeRate, prevRate, completed, prevCompleted, hasPrev),
			)
			bonus := Bonus(billableHours, score, rate)

			rep := MonthlyReport{
				ID:                    uuid.NewString(),
				MemberID:              m.id,
				MemberName:            m.name,
				Month:                 body.Month,
				TasksCompleted:        completed,
				HighPriorityCompleted: highPriority,
				OnTimeRate:            onTimeRate,
				TotalHours:            totalHours,
				BillableHours:         billableHours,
				PerformanceScore:      score,
				BonusAmount:           bonus,
				GeneratedAt:           now,
			}
			reports = append(reports, rep)
		}

		// rank by performance, best first
		for i := range reports {
			rank := 1
			for j := range reports {
				if reports[j].PerformanceScore > reports[i].PerformanceScore {
					rank++
				}
			}
			reports[i].Rank = rank
		}

		for _, rep := range reports {
			_, err := dbx.ExecContext(ctx, `
				INSERT INTO monthly_reports (
					id, member_id, month,
					tasks_completed, high_priority_completed, on_time_rate,
					total_hours, billable_hours,
					performance_score, bonus_amount, rank, generated_at
				)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
				ON CONFLICT (member_id, month) DO UPDATE SET
					tasks_completed = EXCLUDED.tasks_completed,
					high_priority_completed = EXCLUDED.high_priority_completed,
					on_time_rate = EXCLUDED.on_time_rate,
					total_hours = EXCLUDED.total_hours,
					billable_hours = EXCLUDED.billable_hours,
					performance_score = EXCLUDED.performance_score,
					bonus_amount = EXCLUDED.bonus_amount,
					rank = EXCLUDED.rank,
					generated_at = EXCLUDED.generated_at
			`, rep.ID, rep.MemberID, rep.Month,
				rep.TasksCompleted, rep.HighPriorityCompleted, rep.OnTimeRate,
				rep.TotalHours, rep.BillableHours,
				rep.PerformanceScore, rep.BonusAmount, rep.Rank, rep.GeneratedAt)
			if err != nil {
				http.Error(w, "db upsert error: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}

		if body.SendNotifications {
			for _, rep := range reports {
				msg := notify.LeaderboardMessage(rep.MemberName, rep.Rank, rep.PerformanceScore)
				_, _ = notifier.Send(ctx, rep.MemberID, notify.TypeLeaderboard, msg)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"month":   body.Month,
			"reports": reports,
		})
	}
}
