package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL and bootstraps the schema.
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("Connected to PostgreSQL")

	return InitPostgresTables()
}

// InitPostgresTables creates all necessary tables if they don't exist.
func InitPostgresTables() error {
	queries := []string{
		// Users table. Phone is the login key; password_hash is argon2id.
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			name TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,

		// Crop catalog, global (not user-owned)
		`CREATE TABLE IF NOT EXISTS crops (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			image_url TEXT,
			description TEXT,
			growing_period INTEGER,
			optimal_temperature JSONB,
			optimal_humidity JSONB,
			planting_season TEXT,
			harvest_season TEXT
		)`,

		// Fields table
		`CREATE TABLE IF NOT EXISTS fields (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			name TEXT NOT NULL,
			location TEXT,
			size DOUBLE PRECISION,
			unit TEXT NOT NULL DEFAULT 'dönüm',
			coordinates JSONB NOT NULL,
			current_crop_id UUID REFERENCES crops(id) ON DELETE SET NULL,
			color TEXT NOT NULL DEFAULT '#4CAF50',
			notes TEXT
		)`,

		// Tasks table
		`CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			field_id UUID REFERENCES fields(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			description TEXT,
			task_type TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			start_time TEXT,
			end_time TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			priority TEXT NOT NULL DEFAULT 'normal',
			season TEXT
		)`,

		// Field health readings (historical rows; dashboard reads latest per field)
		`CREATE TABLE IF NOT EXISTS field_health (
			id UUID PRIMARY KEY,
			field_id UUID NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			temperature DOUBLE PRECISION,
			humidity DOUBLE PRECISION,
			soil_moisture DOUBLE PRECISION,
			plant_health TEXT,
			notes TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_fields_user_id ON fields(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_field_id ON tasks(field_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_start_date ON tasks(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_field_health_field_id_ts ON field_health(field_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection.
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
