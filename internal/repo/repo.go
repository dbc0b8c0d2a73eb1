package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"Billios/internal/calc/fieldtest"
	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	FieldTestStore
}

type FieldTestStore interface {
	SaveFieldTest(ctx context.Context, userID int, project string, in fieldtest.Input, res fieldtest.Result) (int, error)
	ListFieldTests(ctx context.Context, userID, limit int) ([]Record, error)
	GetFieldTest(ctx context.Context, userID, id int) (Record, error)
}

// Record is a stored field test.
type Record struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Project   string           `json:"project"`
	Input     fieldtest.Input  `json:"input"`
	Result    fieldtest.Result `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS field_tests (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	project TEXT NOT NULL DEFAULT '',
	input JSONB NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS field_tests_user_idx ON field_tests (user_id, created_at DESC);
`

// Open connects to postgres, requiring TLS unless the DSN says otherwise.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = connStr + sep + "sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns the user id and password hash.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveFieldTest(ctx context.Context, userID int, project string, in fieldtest.Input, res fieldtest.Result) (int, error) {
	input, err := json.Marshal(in)
	if err != nil {
		return 0, err
	}
	result, err := json.Marshal(res)
	if err != nil {
		return 0, err
	}

	var id int
	query := "INSERT INTO field_tests (user_id, project, input, result) VALUES ($1, $2, $3, $4) RETURNING id"
	err = r.db.QueryRowContext(ctx, query, userID, project, input, result).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListFieldTests(ctx context.Context, userID, limit int) ([]Record, error) {
	query := `SELECT id, user_id, project, input, result, created_at FROM field_tests
		WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepository) GetFieldTest(ctx context.Context, userID, id int) (Record, error) {
	query := `SELECT id, user_id, project, input, result, created_at FROM field_tests
		WHERE id=$1 AND user_id=$2`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var input, result []byte
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Project, &input, &result, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(input, &rec.Input); err != nil {
		return Record{}, fmt.Errorf("decode input of field test %d: %w", rec.ID, err)
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return Record{}, fmt.Errorf("decode result of field test %d: %w", rec.ID, err)
	}
	return rec, nil
}
