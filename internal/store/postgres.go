package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// Postgres serves the relational stores over database/sql (lib/pq).
// Weather history lives in Mongo; see MongoWeather.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresBackend assembles the production Backend: relational rows in
// Postgres, weather payload blobs in Mongo.
func NewPostgresBackend(db *sql.DB, weather WeatherStore) Backend {
	p := NewPostgres(db)
	return Backend{Users: p, Fields: p, Crops: p, Tasks: p, Health: p, Weather: weather}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func marshalRange(r *models.Range) (interface{}, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// dateString formats a scanned DATE column back to the YYYY-MM-DD wire form.
func dateString(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}

// setClause accumulates "col = $n" fragments for a partial UPDATE so only
// the provided columns are written. Non-overlapping concurrent updates to
// the same row then both survive.
type setClause struct {
	sets []string
	args []interface{}
}

func (s *setClause) add(col string, v interface{}) {
	s.args = append(s.args, v)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) empty() bool { return len(s.sets) == 0 }

func (s *setClause) where(id uuid.UUID) (string, []interface{}) {
	s.args = append(s.args, id)
	return fmt.Sprintf("%s WHERE id = $%d", strings.Join(s.sets, ", "), len(s.args)), s.args
}

// --- users ---

const userColumns = "id, created_at, name, phone, password_hash"

func scanUser(r rowScanner) (*models.User, error) {
	var u models.User
	if err := r.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Phone, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(p.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (p *Postgres) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return scanUser(p.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone = $1", phone))
}

func (p *Postgres) CreateUser(ctx context.Context, n NewUser) (*models.User, error) {
	u := models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Name:         n.Name,
		Phone:        n.Phone,
		PasswordHash: n.PasswordHash,
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, name, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.CreatedAt, u.Name, u.Phone, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- fields ---

const fieldColumns = "id, user_id, created_at, name, location, size, unit, coordinates, current_crop_id, color, notes"

func scanFieldRow(r rowScanner) (*models.Field, error) {
	var (
		f        models.Field
		location sql.NullString
		size     sql.NullFloat64
		coords   []byte
		cropID   uuid.NullUUID
		notes    sql.NullString
	)
	err := r.Scan(&f.ID, &f.UserID, &f.CreatedAt, &f.Name, &location, &size,
		&f.Unit, &coords, &cropID, &f.Color, &notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	f.Location = location.String
	if size.Valid {
		f.Size = &size.Float64
	}
	f.Coordinates = json.RawMessage(coords)
	if cropID.Valid {
		id := cropID.UUID
		f.CurrentCropID = &id
	}
	f.Notes = notes.String
	return &f, nil
}

func (p *Postgres) GetField(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	return scanFieldRow(p.db.QueryRowContext(ctx,
		"SELECT "+fieldColumns+" FROM fields WHERE id = $1", id))
}

func (p *Postgres) GetFieldsByUser(ctx context.Context, userID uuid.UUID) ([]models.Field, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT "+fieldColumns+" FROM fields WHERE user_id = $1 ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Field{}
	for rows.Next() {
		f, err := scanFieldRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateField(ctx context.Context, n NewField) (*models.Field, error) {
	f := models.Field{
		ID:            uuid.New(),
		UserID:        n.UserID,
		CreatedAt:     time.Now().UTC(),
		Name:          n.Name,
		Location:      n.Location,
		Size:          n.Size,
		Unit:          defaultStr(n.Unit, models.DefaultFieldUnit),
		Coordinates:   n.Coordinates,
		CurrentCropID: n.CurrentCropID,
		Color:         defaultStr(n.Color, models.DefaultFieldColor),
		Notes:         n.Notes,
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO fields (id, user_id, created_at, name, location, size, unit, coordinates, current_crop_id, color, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, f.ID, f.UserID, f.CreatedAt, f.Name, nullIfEmpty(f.Location), f.Size,
		f.Unit, []byte(f.Coordinates), nullUUID(f.CurrentCropID), f.Color, nullIfEmpty(f.Notes))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (p *Postgres) UpdateField(ctx context.Context, id uuid.UUID, u FieldUpdate) (*models.Field, error) {
	var sc setClause
	if u.Name != nil {
		sc.add("name", *u.Name)
	}
	if u.Location != nil {
		sc.add("location", nullIfEmpty(*u.Location))
	}
	if u.Size != nil {
		sc.add("size", *u.Size)
	}
	if u.Unit != nil {
		sc.add("unit", *u.Unit)
	}
	if u.Coordinates != nil {
		sc.add("coordinates", []byte(u.Coordinates))
	}
	if u.CurrentCropID != nil {
		sc.add("current_crop_id", *u.CurrentCropID)
	}
	if u.Color != nil {
		sc.add("color", *u.Color)
	}
	if u.Notes != nil {
		sc.add("notes", nullIfEmpty(*u.Notes))
	}
	if sc.empty() {
		return p.GetField(ctx, id)
	}
	clause, args := sc.where(id)
	return scanFieldRow(p.db.QueryRowContext(ctx,
		"UPDATE fields SET "+clause+" RETURNING "+fieldColumns, args...))
}

func (p *Postgres) DeleteField(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := p.db.ExecContext(ctx, "DELETE FROM fields WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- crops ---

const cropColumns = "id, name, image_url, description, growing_period, optimal_temperature, optimal_humidity, planting_season, harvest_season"

func scanCropRow(r rowScanner) (*models.Crop, error) {
	var (
		c                 models.Crop
		imageURL          sql.NullString
		description       sql.NullString
		growingPeriod     sql.NullInt64
		optTemp, optHum   []byte
		planting, harvest sql.NullString
	)
	err := r.Scan(&c.ID, &c.Name, &imageURL, &description, &growingPeriod,
		&optTemp, &optHum, &planting, &harvest)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.ImageURL = imageURL.String
	c.Description = description.String
	if growingPeriod.Valid {
		v := int(growingPeriod.Int64)
		c.GrowingPeriod = &v
	}
	for _, pair := range []struct {
		raw []byte
		dst **models.Range
	}{{optTemp, &c.OptimalTemperature}, {optHum, &c.OptimalHumidity}} {
		if len(pair.raw) > 0 {
			var rg models.Range
			if err := json.Unmarshal(pair.raw, &rg); err != nil {
				return nil, err
			}
			*pair.dst = &rg
		}
	}
	c.PlantingSeason = planting.String
	c.HarvestSeason = harvest.String
	return &c, nil
}

func (p *Postgres) GetCrop(ctx context.Context, id uuid.UUID) (*models.Crop, error) {
	return scanCropRow(p.db.QueryRowContext(ctx,
		"SELECT "+cropColumns+" FROM crops WHERE id = $1", id))
}

func (p *Postgres) GetAllCrops(ctx context.Context) ([]models.Crop, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT "+cropColumns+" FROM crops ORDER BY LOWER(name)")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Crop{}
	for rows.Next() {
		c, err := scanCropRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateCrop(ctx context.Context, n NewCrop) (*models.Crop, error) {
	c := models.Crop{
		ID:                 uuid.New(),
		Name:               n.Name,
		ImageURL:           n.ImageURL,
		Description:        n.Description,
		GrowingPeriod:      n.GrowingPeriod,
		OptimalTemperature: n.OptimalTemperature,
		OptimalHumidity:    n.OptimalHumidity,
		PlantingSeason:     n.PlantingSeason,
		HarvestSeason:      n.HarvestSeason,
	}
	optTemp, err := marshalRange(c.OptimalTemperature)
	if err != nil {
		return nil, err
	}
	optHum, err := marshalRange(c.OptimalHumidity)
	if err != nil {
		return nil, err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO crops (id, name, image_url, description, growing_period, optimal_temperature, optimal_humidity, planting_season, harvest_season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.Name, nullIfEmpty(c.ImageURL), nullIfEmpty(c.Description),
		c.GrowingPeriod, optTemp, optHum,
		nullIfEmpty(c.PlantingSeason), nullIfEmpty(c.HarvestSeason))
	if err != nil {
		return nil, err
	}
	return &c, nil
}
