package members

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"teamops-backend/internal/activity"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/priority"
)

const memberColumns = `
	m.id, m.name, m.email, COALESCE(m.phone,''), m.role,
	COALESCE(m.timezone,''), m.hourly_rate, COALESCE(m.skill_tags,''),
	m.seniority_level, m.max_concurrent_tasks,
	m.is_manager, m.is_active, m.notify_on_overdue, m.notify_on_meeting,
	m.created_at`

func scanMember(row interface{ Scan(...any) error }) (Member, error) {
	var m Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role,
		&m.Timezone, &m.HourlyRate, &m.SkillTags,
		&m.SeniorityLevel, &m.MaxConcurrentTasks,
		&m.IsManager, &m.IsActive, &m.NotifyOnOverdue, &m.NotifyOnMeeting,
		&m.CreatedAt,
	)
	return m, err
}

// Roster loads the active members with their open-task counts, as a
// snapshot for the owner-suggestion engine.
func Roster(dbx *sql.DB) ([]priority.Member, error) {
	rows, err := dbx.Query(`
		SELECT
			m.id, m.name, m.role, COALESCE(m.skill_tags,''),
			m.seniority_level, m.max_concurrent_tasks, m.is_active,
			COALESCE(t.open_count, 0)
		FROM members m
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS open_count
			FROM tasks
			WHERE owner_id = m.id AND status <> 'DONE'
		) t ON TRUE
		WHERE m.is_active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []priority.Member
	for rows.Next() {
		var m priority.Member
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Role, &m.SkillTags,
			&m.SeniorityLevel, &m.MaxConcurrentTasks, &m.IsActive,
			&m.OpenTasks,
		); err != nil {
			return nil, err
		}
		roster = append(roster, m)
	}
	return roster, rows.Err()
}

func ListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbx.Query(`
			SELECT ` + memberColumns + `,
				COALESCE(t.open_count, 0)
			FROM members m
			LEFT JOIN LATERAL (
				SELECT COUNT(*) AS open_count
				FROM tasks
				WHERE owner_id = m.id AND status <> 'DONE'
			) t ON TRUE
			ORDER BY m.name ASC
		`)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		result := []Member{}
		for rows.Next() {
			var m Member
			if err := rows.Scan(
				&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role,
				&m.Timezone, &m.HourlyRate, &m.SkillTags,
				&m.SeniorityLevel, &m.MaxConcurrentTasks,
				&m.IsManager, &m.IsActive, &m.NotifyOnOverdue, &m.NotifyOnMeeting,
				&m.CreatedAt,
				&m.OpenTasks,
			); err != nil {
				http.Error(w, "scan error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			result = append(result, m)
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
			Name               string  `json:"name"`
			Email              string  `json:"email"`
			Phone              string  `json:"phone"`
			Role               string  `json:"role"`
			Timezone           string  `json:"timezone"`
			HourlyRate         float64 `json:"hourly_rate"`
			SkillTags          string  `json:"skill_tags"`
			SeniorityLevel     int     `json:"seniority_level"`
			MaxConcurrentTasks int     `json:"max_concurrent_tasks"`
			IsManager          bool    `json:"is_manager"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Name == "" || body.Email == "" {
			http.Error(w, "name & email required", http.StatusBadRequest)
			return
		}
		if body.SeniorityLevel == 0 {
			body.SeniorityLevel = 2
		}
		if body.MaxConcurrentTasks == 0 {
			body.MaxConcurrentTasks = 5
		}

		id := uuid.NewString()
		_, err := dbx.Exec(`
			INSERT INTO members (
				id, name, email, phone, role, timezone, hourly_rate,
				skill_tags, seniority_level, max_concurrent_tasks,
				is_manager, is_active, notify_on_overdue, notify_on_meeting
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,TRUE,TRUE,TRUE)
		`, id, body.Name, body.Email, body.Phone, body.Role, body.Timezone,
			body.HourlyRate, body.SkillTags, body.SeniorityLevel,
			body.MaxConcurrentTasks, body.IsManager)
		if err != nil {
			http.Error(w, "db insert error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		m, err := fetchMember(dbx, id)
		if err != nil {
			http.Error(w, "db read error", http.StatusInternalServerError)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(r.Context(), dbx, env, activity.EventMemberCreated, map[string]any{
			"member_id": id,
			"seniority": body.SeniorityLevel,
		}, activity.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)
	}
}

func UpdateHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID                 string   `json:"id"`
			Name               *string  `json:"name"`
			Phone              *string  `json:"phone"`
			Role               *string  `json:"role"`
			HourlyRate         *float64 `json:"hourly_rate"`
			SkillTags          *string  `json:"skill_tags"`
			SeniorityLevel     *int     `json:"seniority_level"`
			MaxConcurrentTasks *int     `json:"max_concurrent_tasks"`
			IsActive           *bool    `json:"is_active"`
			NotifyOnOverdue    *bool    `json:"notify_on_overdue"`
			NotifyOnMeeting    *bool    `json:"notify_on_meeting"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		_, err := dbx.Exec(`
			UPDATE members SET
				name                 = COALESCE($2, name),
				phone                = COALESCE($3, phone),
				role                 = COALESCE($4, role),
				hourly_rate          = COALESCE($5, hourly_rate),
				skill_tags           = COALESCE($6, skill_tags),
				seniority_level      = COALESCE($7, seniority_level),
				max_concurrent_tasks = COALESCE($8, max_concurrent_tasks),
				is_active            = COALESCE($9, is_active),
				notify_on_overdue    = COALESCE($10, notify_on_overdue),
				notify_on_meeting    = COALESCE($11, notify_on_meeting)
			WHERE id = $1
		`, body.ID, body.Name, body.Phone, body.Role, body.HourlyRate,
			body.SkillTags, body.SeniorityLevel, body.MaxConcurrentTasks,
			body.IsActive, body.NotifyOnOverdue, body.NotifyOnMeeting)
		if err != nil {
			http.Error(w, "db update error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		m, err := fetchMember(dbx, body.ID)
		if err != nil {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m)
	}
}

func DeleteHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		if _, err := dbx.Exec(`DELETE FROM members WHERE id = $1`, body.ID); err != nil {
			http.Error(w, "db delete error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}
}

func fetchMember(dbx *sql.DB, id string) (Member, error) {
	row := dbx.QueryRow(`
		SELECT `+memberColumns+`
		FROM members m
		WHERE m.id = $1
	`, id)
	return scanMember(row)
}
