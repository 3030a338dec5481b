package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

const taskColumns = "id, user_id, created_at, field_id, title, description, task_type, start_date, end_date, start_time, end_time, completed, priority, season"

func scanTaskRow(r rowScanner) (*models.Task, error) {
	var (
		t           models.Task
		fieldID     uuid.NullUUID
		description sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
		startTime   sql.NullString
		endTime     sql.NullString
		season      sql.NullString
	)
	err := r.Scan(&t.ID, &t.UserID, &t.CreatedAt, &fieldID, &t.Title, &description,
		&t.TaskType, &startDate, &endDate, &startTime, &endTime, &t.Completed,
		&t.Priority, &season)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if fieldID.Valid {
		id := fieldID.UUID
		t.FieldID = &id
	}
	t.Description = description.String
	t.StartDate = dateString(startDate)
	t.EndDate = dateString(endDate)
	t.StartTime = startTime.String
	t.EndTime = endTime.String
	t.Season = season.String
	return &t, nil
}

func (p *Postgres) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return scanTaskRow(p.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
}

func (p *Postgres) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Task{}
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (p *Postgres) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	return p.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY start_date, created_at", userID)
}

func (p *Postgres) GetTasksByField(ctx context.Context, fieldID uuid.UUID) ([]models.Task, error) {
	return p.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE field_id = $1 ORDER BY start_date, created_at", fieldID)
}

func (p *Postgres) CreateTask(ctx context.Context, n NewTask) (*models.Task, error) {
	t := models.Task{
		ID:          uuid.New(),
		UserID:      n.UserID,
		CreatedAt:   time.Now().UTC(),
		FieldID:     n.FieldID,
		Title:       n.Title,
		Description: n.Description,
		TaskType:    n.TaskType,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
		StartTime:   n.StartTime,
		EndTime:     n.EndTime,
		Completed:   n.Completed,
		Priority:    defaultStr(n.Priority, models.DefaultTaskPriority),
		Season:      n.Season,
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, created_at, field_id, title, description, task_type, start_date, end_date, start_time, end_time, completed, priority, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, t.ID, t.UserID, t.CreatedAt, nullUUID(t.FieldID), t.Title,
		nullIfEmpty(t.Description), t.TaskType, t.StartDate, nullIfEmpty(t.EndDate),
		nullIfEmpty(t.StartTime), nullIfEmpty(t.EndTime), t.Completed, t.Priority,
		nullIfEmpty(t.Season))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *Postgres) UpdateTask(ctx context.Context, id uuid.UUID, u TaskUpdate) (*models.Task, error) {
	var sc setClause
	if u.FieldID != nil {
		sc.add("field_id", *u.FieldID)
	}
	if u.Title != nil {
		sc.add("title", *u.Title)
	}
	if u.Description != nil {
		sc.add("description", nullIfEmpty(*u.Description))
	}
	if u.TaskType != nil {
		sc.add("task_type", *u.TaskType)
	}
	if u.StartDate != nil {
		sc.add("start_date", *u.StartDate)
	}
	if u.EndDate != nil {
		sc.add("end_date", nullIfEmpty(*u.EndDate))
	}
	if u.StartTime != nil {
		sc.add("start_time", nullIfEmpty(*u.StartTime))
	}
	if u.EndTime != nil {
		sc.add("end_time", nullIfEmpty(*u.EndTime))
	}
	if u.Completed != nil {
		sc.add("completed", *u.Completed)
	}
	if u.Priority != nil {
		sc.add("priority", *u.Priority)
	}
	if u.Season != nil {
		sc.add("season", nullIfEmpty(*u.Season))
	}
	if sc.empty() {
		return p.GetTask(ctx, id)
	}
	clause, args := sc.where(id)
	return scanTaskRow(p.db.QueryRowContext(ctx,
		"UPDATE tasks SET "+clause+" RETURNING "+taskColumns, args...))
}

func (p *Postgres) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := p.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- field health ---

const healthColumns = "id, field_id, timestamp, temperature, humidity, soil_moisture, plant_health, notes"

func scanHealthRow(r rowScanner) (*models.FieldHealth, error) {
	var (
		h            models.FieldHealth
		temperature  sql.NullFloat64
		humidity     sql.NullFloat64
		soilMoisture sql.NullFloat64
		plantHealth  sql.NullString
		notes        sql.NullString
	)
	err := r.Scan(&h.ID, &h.FieldID, &h.Timestamp, &temperature, &humidity,
		&soilMoisture, &plantHealth, &notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if temperature.Valid {
		h.Temperature = &temperature.Float64
	}
	if humidity.Valid {
		h.Humidity = &humidity.Float64
	}
	if soilMoisture.Valid {
		h.SoilMoisture = &soilMoisture.Float64
	}
	h.PlantHealth = plantHealth.String
	h.Notes = notes.String
	return &h, nil
}

func (p *Postgres) CreateReading(ctx context.Context, n NewReading) (*models.FieldHealth, error) {
	h := models.FieldHealth{
		ID:           uuid.New(),
		FieldID:      n.FieldID,
		Timestamp:    time.Now().UTC(),
		Temperature:  n.Temperature,
		Humidity:     n.Humidity,
		SoilMoisture: n.SoilMoisture,
		PlantHealth:  n.PlantHealth,
		Notes:        n.Notes,
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO field_health (id, field_id, timestamp, temperature, humidity, soil_moisture, plant_health, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, h.ID, h.FieldID, h.Timestamp, h.Temperature, h.Humidity, h.SoilMoisture,
		nullIfEmpty(h.PlantHealth), nullIfEmpty(h.Notes))
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (p *Postgres) LatestReading(ctx context.Context, fieldID uuid.UUID) (*models.FieldHealth, error) {
	return scanHealthRow(p.db.QueryRowContext(ctx,
		"SELECT "+healthColumns+" FROM field_health WHERE field_id = $1 ORDER BY timestamp DESC LIMIT 1",
		fieldID))
}

func (p *Postgres) LatestByField(ctx context.Context, fieldIDs []uuid.UUID) (map[uuid.UUID]models.FieldHealth, error) {
	if len(fieldIDs) == 0 {
		return map[uuid.UUID]models.FieldHealth{}, nil
	}
	ids := make([]string, len(fieldIDs))
	for i, id := range fieldIDs {
		ids[i] = id.String()
	}
	// Latest row per field by timestamp, not scan order.
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT ON (field_id) `+healthColumns+`
		FROM field_health
		WHERE field_id = ANY($1)
		ORDER BY field_id, timestamp DESC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]models.FieldHealth)
	for rows.Next() {
		h, err := scanHealthRow(rows)
		if err != nil {
			return nil, err
		}
		out[h.FieldID] = *h
	}
	return out, rows.Err()
}
