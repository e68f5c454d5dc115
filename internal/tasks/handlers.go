package tasks

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamops-backend/internal/activity"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/members"
	"teamops-backend/internal/notify"
	"teamops-backend/internal/priority"
)

const taskColumns = `
	t.id, t.title, COALESCE(t.description,''), t.status, t.progress_percent,
	t.urgency_level, t.importance_level, t.complexity_level,
	t.internal_deadline, t.external_client_deadline,
	t.estimated_duration, t.durability_category, COALESCE(t.skill_tags,''),
	t.owner_id, COALESCE(o.name,''), COALESCE(o.role,''),
	t.recommended_owner_id, t.assignment_confidence,
	t.flagged_immediate, t.requires_multi_hand,
	COALESCE(t.recommended_cadence,''), COALESCE(t.recommended_plan,'[]'),
	t.last_checkin_at, t.completed_at, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(...any) error }) (Task, error) {
	var (
		t        Task
		planJSON string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.ProgressPercent,
		&t.UrgencyLevel, &t.ImportanceLevel, &t.ComplexityLevel,
		&t.InternalDeadline, &t.ExternalClientDeadline,
		&t.EstimatedDuration, &t.DurabilityCategory, &t.SkillTags,
		&t.OwnerID, &t.OwnerName, &t.OwnerRole,
		&t.RecommendedOwnerID, &t.AssignmentConfidence,
		&t.FlaggedImmediate, &t.RequiresMultiHand,
		&t.RecommendedCadence, &planJSON,
		&t.LastCheckinAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return Task{}, err
	}
	if err := json.Unmarshal([]byte(planJSON), &t.RecommendedPlan); err != nil {
		t.RecommendedPlan = nil
	}
	return t, nil
}

func fetchTask(dbx *sql.DB, id string) (Task, error) {
	row := dbx.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN members o ON o.id = t.owner_id
		WHERE t.id = $1
	`, id)
	return scanTask(row)
}

// queryTasks runs the list query with the WHERE conditions already
// rendered ($n numbering starts at 1).
func queryTasks(dbx *sql.DB, conditions []string, args []any) ([]Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN members o ON o.id = t.owner_id`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY t.created_at DESC"

	rows, err := dbx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// -------------------------------
// HANDLERS
// -------------------------------

func ListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		view := q.Get("view")
		now := time.Now().UTC()

		var conditions []string
		var args []any
		arg := func(v any) string {
			args = append(args, v)
			return fmt.Sprintf("$%d", len(args))
		}

		if ownerID := q.Get("ownerId"); ownerID != "" {
			conditions = append(conditions, "t.owner_id = "+arg(ownerID))
		}

		switch view {
		case "urgent":
			soon := arg(now.Add(48 * time.Hour))
			conditions = append(conditions, `(
				(t.urgency_level >= 4 AND t.status <> 'DONE')
				OR (t.internal_deadline <= `+soon+` AND t.status <> 'DONE')
				OR (t.external_client_deadline <= `+soon+` AND t.status <> 'DONE')
				OR t.status = 'BLOCKED'
			)`)
		case "overdue":
			nowArg := arg(now)
			conditions = append(conditions, `(
				(t.internal_deadline < `+nowArg+` OR t.external_client_deadline < `+nowArg+`)
				AND t.status <> 'DONE'
			)`)
		case "blocked":
			conditions = append(conditions, "t.status = 'BLOCKED'")
		case "flagged":
			conditions = append(conditions, "t.flagged_immediate = TRUE", "t.status <> 'DONE'")
		case "multi-hand":
			conditions = append(conditions, "t.requires_multi_hand = TRUE", "t.status <> 'DONE'")
		}

		if duration := q.Get("duration"); duration != "" {
			conditions = append(conditions, "t.estimated_duration = "+arg(duration))
		}

		switch q.Get("deadlineType") {
		case "client":
			conditions = append(conditions, "t.external_client_deadline IS NOT NULL")
		case "internal":
			conditions = append(conditions,
				"t.internal_deadline IS NOT NULL",
				"t.external_client_deadline IS NULL")
		}

		taskRows, err := queryTasks(dbx, conditions, args)
		if err != nil {
			http.Error(w, "db query error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		enriched := make([]EnrichedTask, 0, len(taskRows))
		for _, t := range taskRows {
			enriched = append(enriched, Enrich(t, now))
		}
		sort.SliceStable(enriched, func(i, j int) bool {
			return enriched[i].Computed.PriorityScore > enriched[j].Computed.PriorityScore
		})

		w.Header().Set("Content-Type", "application/json")

		if view == "grid" {
			writeGridView(w, enriched, priority.Quadrant(q.Get("quadrant")))
			return
		}

		_ = json.NewEncoder(w).Encode(enriched)
	}
}

// writeGridView groups enriched tasks into the four quadrants. DONE
// tasks are dropped here, matching the engine's grouping rules.
func writeGridView(w http.ResponseWriter, enriched []EnrichedTask, only priority.Quadrant) {
	quadrants := map[priority.Quadrant][]EnrichedTask{
		priority.QuadrantDoNow:     {},
		priority.QuadrantSchedule:  {},
		priority.QuadrantDelegate:  {},
		priority.QuadrantEliminate: {},
	}
	flagged := 0
	multiHand := 0
	total := 0

	for _, t := range enriched {
		if t.Status == priority.StatusDone {
			continue
		}
		quadrants[t.Computed.Quadrant] = append(quadrants[t.Computed.Quadrant], t)
		total++
		if t.FlaggedImmediate {
			flagged++
		}
		if t.RequiresMultiHand {
			multiHand++
		}
	}

	if _, ok := quadrants[only]; ok && only != "" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"view":     "grid",
			"quadrant": only,
			"tasks":    quadrants[only],
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"view":      "grid",
		"quadrants": quadrants,
		"stats": map[string]any{
			"total":     total,
			"doNow":     len(quadrants[priority.QuadrantDoNow]),
			"schedule":  len(quadrants[priority.QuadrantSchedule]),
			"delegate":  len(quadrants[priority.QuadrantDelegate]),
			"eliminate": len(quadrants[priority.QuadrantEliminate]),
			"flagged":   flagged,
			"multiHand": multiHand,
		},
	})
}

type taskInput struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Status                 string     `json:"status"`
	ProgressPercent        int        `json:"progress_percent"`
	UrgencyLevel           int        `json:"urgency_level"`
	ImportanceLevel        int        `json:"importance_level"`
	ComplexityLevel        int        `json:"complexity_level"`
	InternalDeadline       *time.Time `json:"internal_deadline"`
	ExternalClientDeadline *time.Time `json:"external_client_deadline"`
	EstimatedDuration      string     `json:"estimated_duration"`
	DurabilityCategory     string     `json:"durability_category"`
	SkillTags              string     `json:"skill_tags"`
	OwnerID                *string    `json:"owner_id"`
}

func (in *taskInput) applyDefaults() {
	if in.Status == "" {
		in.Status = priority.StatusNotStarted
	}
	if in.UrgencyLevel == 0 {
		in.UrgencyLevel = 3
	}
	if in.ImportanceLevel == 0 {
		in.ImportanceLevel = 3
	}
	if in.ComplexityLevel == 0 {
		in.ComplexityLevel = 3
	}
	if in.EstimatedDuration == "" {
		in.EstimatedDuration = "M"
	}
	if in.DurabilityCategory == "" {
		in.DurabilityCategory = "SHORT"
	}
}

func (in taskInput) engine() priority.Task {
	return priority.Task{
		UrgencyLevel:           in.UrgencyLevel,
		ImportanceLevel:        in.ImportanceLevel,
		InternalDeadline:       in.InternalDeadline,
		ExternalClientDeadline: in.ExternalClientDeadline,
		EstimatedDuration:      in.EstimatedDuration,
		DurabilityCategory:     in.DurabilityCategory,
		ComplexityLevel:        in.ComplexityLevel,
		Status:                 in.Status,
		ProgressPercent:        in.ProgressPercent,
		SkillTags:              in.SkillTags,
	}
}

func CreateHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body taskInput
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(body.Title) == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		body.applyDefaults()

		now := time.Now().UTC()
		engine := body.engine()

		flagCheck := priority.ShouldFlagImmediate(engine, now)
		rec := priority.GetAssignmentRecommendation(engine, now)
		planJSON, _ := json.Marshal(rec.SuggestedPlan)

		// Suggest an owner when none was assigned and we have skills
		// to match against.
		var recommendedOwnerID *string
		var assignmentConfidence *float64
		if body.OwnerID == nil && strings.TrimSpace(body.SkillTags) != "" {
			roster, err := members.Roster(dbx)
			if err != nil {
				log.Printf("[WARN] roster load failed: %v", err)
			} else if suggested := priority.SuggestOwner(
				priority.OwnerRequest{SkillTags: body.SkillTags, ComplexityLevel: body.ComplexityLevel},
				roster, rec,
			); suggested != nil {
				recommendedOwnerID = &suggested.MemberID
				assignmentConfidence = &suggested.Confidence
			}
		}

		id := uuid.NewString()
		_, err := dbx.Exec(`
			INSERT INTO tasks (
				id, title, description, status, progress_percent,
				urgency_level, importance_level, complexity_level,
				internal_deadline, external_client_deadline,
				estimated_duration, durability_category, skill_tags,
				owner_id, recommended_owner_id, assignment_confidence,
				flagged_immediate, requires_multi_hand,
				recommended_cadence, recommended_plan
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		`,
			id, body.Title, body.Description, body.Status, body.ProgressPercent,
			body.UrgencyLevel, body.ImportanceLevel, body.ComplexityLevel,
			body.InternalDeadline, body.ExternalClientDeadline,
			body.EstimatedDuration, body.DurabilityCategory, body.SkillTags,
			body.OwnerID, recommendedOwnerID, assignmentConfidence,
			flagCheck.Flag, rec.RequiresMultiHand,
			string(rec.SuggestedCadence), string(planJSON),
		)
		if err != nil {
			http.Error(w, "db insert error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(r.Context(), dbx, env, activity.EventTaskCreated, map[string]any{
			"task_id":           id,
			"urgency":           body.UrgencyLevel,
			"importance":        body.ImportanceLevel,
			"flagged_immediate": flagCheck.Flag,
			"has_deadline":      body.InternalDeadline != nil || body.ExternalClientDeadline != nil,
		}, activity.SourceEventKeyFromRequest(r))

		full, err := fetchTask(dbx, id)
		if err != nil {
			http.Error(w, "db read error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Enrich(full, now))
	}
}

type taskUpdate struct {
	ID                     string     `json:"id"`
	Title                  *string    `json:"title"`
	Description            *string    `json:"description"`
	Status                 *string    `json:"status"`
	ProgressPercent        *int       `json:"progress_percent"`
	UrgencyLevel           *int       `json:"urgency_level"`
	ImportanceLevel        *int       `json:"importance_level"`
	ComplexityLevel        *int       `json:"complexity_level"`
	InternalDeadline       *time.Time `json:"internal_deadline"`
	ExternalClientDeadline *time.Time `json:"external_client_deadline"`
	ClearInternalDeadline  bool       `json:"clear_internal_deadline"`
	ClearClientDeadline    bool       `json:"clear_client_deadline"`
	EstimatedDuration      *string    `json:"estimated_duration"`
	DurabilityCategory     *string    `json:"durability_category"`
	SkillTags              *string    `json:"skill_tags"`
	OwnerID                *string    `json:"owner_id"`
}

func (u taskUpdate) touchesPriorityInputs() bool {
	return u.UrgencyLevel != nil || u.ImportanceLevel != nil ||
		u.ComplexityLevel != nil ||
		u.InternalDeadline != nil || u.ExternalClientDeadline != nil ||
		u.ClearInternalDeadline || u.ClearClientDeadline ||
		u.EstimatedDuration != nil || u.DurabilityCategory != nil ||
		u.Status != nil
}

func UpdateHandler(dbx *sql.DB, notifier *notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body taskUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		old, err := fetchTask(dbx, body.ID)
		if err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		now := time.Now().UTC()
		isCompleting := old.Status != priority.StatusDone &&
			body.Status != nil && *body.Status == priority.StatusDone

		// apply the patch onto the old row
		next := old
		if body.Title != nil {
			next.Title = *body.Title
		}
		if body.Description != nil {
			next.Description = *body.Description
		}
		if body.Status != nil {
			next.Status = *body.Status
		}
		if body.ProgressPercent != nil {
			next.ProgressPercent = *body.ProgressPercent
		}
		if body.UrgencyLevel != nil {
			next.UrgencyLevel = *body.UrgencyLevel
		}
		if body.ImportanceLevel != nil {
			next.ImportanceLevel = *body.ImportanceLevel
		}
		if body.ComplexityLevel != nil {
			next.ComplexityLevel = *body.ComplexityLevel
		}
		if body.InternalDeadline != nil {
			next.InternalDeadline = body.InternalDeadline
		}
		if body.ClearInternalDeadline {
			next.InternalDeadline = nil
		}
		if body.ExternalClientDeadline != nil {
			next.ExternalClientDeadline = body.ExternalClientDeadline
		}
		if body.ClearClientDeadline {
			next.ExternalClientDeadline = nil
		}
		if body.EstimatedDuration != nil {
			next.EstimatedDuration = *body.EstimatedDuration
		}
		if body.DurabilityCategory != nil {
			next.DurabilityCategory = *body.DurabilityCategory
		}
		if body.SkillTags != nil {
			next.SkillTags = *body.SkillTags
		}
		if body.OwnerID != nil {
			next.OwnerID = body.OwnerID
		}
		if isCompleting {
			next.ProgressPercent = 100
			next.CompletedAt = &now
		}
		next.LastCheckinAt = &now

		// re-run the engine when any priority input moved
		if body.touchesPriorityInputs() {
			engine := next.Engine()
			next.FlaggedImmediate = priority.ShouldFlagImmediate(engine, now).Flag
			rec := priority.GetAssignmentRecommendation(engine, now)
			next.RequiresMultiHand = rec.RequiresMultiHand
			next.RecommendedCadence = string(rec.SuggestedCadence)
			next.RecommendedPlan = rec.SuggestedPlan
		}

		planJSON, _ := json.Marshal(next.RecommendedPlan)
		_, err = dbx.Exec(`
			UPDATE tasks SET
				title = $2, description = $3, status = $4, progress_percent = $5,
				urgency_level = $6, importance_level = $7, complexity_level = $8,
				internal_deadline = $9, external_client_deadline = $10,
				estimated_duration = $11, durability_category = $12, skill_tags = $13,
				owner_id = $14,
				flagged_immediate = $15, requires_multi_hand = $16,
				recommended_cadence = $17, recommended_plan = $18,
				last_checkin_at = $19, completed_at = $20,
				updated_at = now()
			WHERE id = $1
		`,
			next.ID, next.Title, next.Description, next.Status, next.ProgressPercent,
			next.UrgencyLevel, next.ImportanceLevel, next.ComplexityLevel,
			next.InternalDeadline, next.ExternalClientDeadline,
			next.EstimatedDuration, next.DurabilityCategory, next.SkillTags,
			next.OwnerID,
			next.FlaggedImmediate, next.RequiresMultiHand,
			next.RecommendedCadence, string(planJSON),
			next.LastCheckinAt, next.CompletedAt,
		)
		if err != nil {
			http.Error(w, "db update error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		eventName := activity.EventTaskUpdated
		if isCompleting {
			eventName = activity.EventTaskCompleted
		}
		_ = activity.Log(r.Context(), dbx, env, eventName, map[string]any{
			"task_id":           next.ID,
			"status":            next.Status,
			"flagged_immediate": next.FlaggedImmediate,
		}, activity.SourceEventKeyFromRequest(r))

		// celebration SMS when an owned task gets done
		if isCompleting && next.OwnerID != nil && notifier != nil {
			msg := notify.ProgressCelebrationMessage(old.OwnerName, next.Title)
			if _, err := notifier.Send(r.Context(), *next.OwnerID, notify.TypeAchievement, msg); err != nil {
				log.Printf("[WARN] celebration SMS failed for task %s: %v", next.ID, err)
			}
		}

		full, err := fetchTask(dbx, next.ID)
		if err != nil {
			http.Error(w, "db read error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Enrich(full, now))
	}
}

func DeleteHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
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

		if _, err := dbx.Exec(`DELETE FROM tasks WHERE id = $1`, body.ID); err != nil {
			http.Error(w, "db delete error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := activity.FromRequest(r)
		env.UserID = uid
		_ = activity.Log(r.Context(), dbx, env, activity.EventTaskDeleted, map[string]any{
			"task_id": body.ID,
		}, activity.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}
}

// EvaluateHandler runs the full engine over a task payload without
// persisting anything, so the UI can preview scores and staffing before
// saving.
func EvaluateHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body taskInput
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		body.applyDefaults()

		now := time.Now().UTC()
		engine := body.engine()

		pressure := priority.CalculateDeadlinePressure(engine.InternalDeadline, engine.ExternalClientDeadline, now)
		rec := priority.GetAssignmentRecommendation(engine, now)

		var suggestion *priority.OwnerSuggestion
		if strings.TrimSpace(body.SkillTags) != "" {
			roster, err := members.Roster(dbx)
			if err != nil {
				log.Printf("[WARN] roster load failed: %v", err)
			} else {
				suggestion = priority.SuggestOwner(
					priority.OwnerRequest{SkillTags: body.SkillTags, ComplexityLevel: body.ComplexityLevel},
					roster, rec,
				)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"priority_score":    priority.CalculatePriorityScore(engine, now),
			"quadrant":          priority.TaskQuadrant(engine),
			"deadline_pressure": pressure,
			"immediate":         priority.ShouldFlagImmediate(engine, now),
			"recommendation":    rec,
			"suggested_owner":   suggestion,
		})
	}
}
