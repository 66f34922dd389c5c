package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecfrontend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	config.MaxConns = 20
	config.MaxConnIdleTime = 20 * time.Second
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Test the connection
	if err = pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}

// PostgresStore keeps sessions in a table, for deployments without Redis.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

// EnsureSchema creates the sessions table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		user_json TEXT NOT NULL DEFAULT '',
		flash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		last_activity TEXT NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	);`
	_, err := s.DB.Exec(ctx, stmt)
	return err
}

func (s *PostgresStore) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	userJSON := ""
	if session.User != nil {
		b, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		userJSON = string(b)
	}

	stmt := `INSERT INTO sessions
		(token, access_token, user_json, flash, created_at, expires_at, last_activity, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (token) DO UPDATE SET
		access_token = $2, user_json = $3, flash = $4, expires_at = $6, last_activity = $7;`
	_, err := s.DB.Exec(ctx, stmt,
		session.Token, session.AccessToken, userJSON, session.Flash,
		session.CreatedAt, time.Now().Add(ttl), session.LastActivity,
		session.UserAgent, session.IPAddress)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `SELECT access_token, user_json, flash, created_at, expires_at, last_activity, user_agent, ip_address
		FROM sessions WHERE token = $1 AND expires_at > NOW();`
	row := s.DB.QueryRow(ctx, stmt, token)

	session := models.Session{Token: token}
	var (
		userJSON  string
		expiresAt time.Time
	)
	err := row.Scan(&session.AccessToken, &userJSON, &session.Flash,
		&session.CreatedAt, &expiresAt, &session.LastActivity, &session.UserAgent, &session.IPAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	session.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	if userJSON != "" {
		var user models.User
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil {
			session.User = &user
		}
	}
	return &session, nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE token = $1;", token)
	return err
}
