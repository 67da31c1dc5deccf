package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("repo: not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

// SweepRecord is a stored sweep summary. Points holds the full result table as JSON.
type SweepRecord struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      string          `json:"kind"`
	Elements  []string        `json:"elements"`
	Exponent  string          `json:"exponent"`
	Step      float64         `json:"step"`
	Count     int             `json:"count"`
	BestConc  []float64       `json:"best_concentrations"`
	BestMPa   float64         `json:"best_strength_mpa"`
	BestGPa   float64         `json:"best_shear_modulus_gpa"`
	Points    json.RawMessage `json:"points,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type SweepStore interface {
	SaveSweep(ctx context.Context, rec SweepRecord) (int, error)
	ListSweeps(ctx context.Context, userID, limit int) ([]SweepRecord, error)
	GetSweep(ctx context.Context, userID, id int) (SweepRecord, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Open connects and pings. TLS is required unless the DSN sets sslmode.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	connStr = withSSLMode(connStr)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("repo: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo: ping: %w", err)
	}
	return db, nil
}

func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sweeps (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	elements TEXT[] NOT NULL,
	exponent TEXT NOT NULL,
	step DOUBLE PRECISION NOT NULL,
	count INTEGER NOT NULL,
	best_conc DOUBLE PRECISION[] NOT NULL,
	best_mpa DOUBLE PRECISION NOT NULL,
	best_gpa DOUBLE PRECISION NOT NULL,
	points JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS sweeps_user_created ON sweeps (user_id, created_at DESC);
`

func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}
