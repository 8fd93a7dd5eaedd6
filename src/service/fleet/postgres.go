package fleet

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const insertFindingQuery = `
	INSERT INTO fleet_findings (id, run_id, seq, bot, finding_id, severity, message, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// PostgresSink stores findings in a shared PostgreSQL table
type PostgresSink struct {
	db *sql.DB

	mu    sync.Mutex
	runID string
	seq   int
}

// NewPostgresSink connects, applies the schema and returns the sink
func NewPostgresSink(ctx context.Context, cfg config.PostgresConfig) (*PostgresSink, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("fleet.postgres.dsn is required for the postgres sink")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresSink{db: db, runID: uuid.NewString()}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *PostgresSink) migrate(ctx context.Context) error {
	schema, err := migrationsFS.ReadFile("migrations/001_findings.sql")
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// BeginBatch starts a new run; sequence numbers restart at zero
func (s *PostgresSink) BeginBatch(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = runID
	s.seq = 0
}

// AddFinding inserts one finding row
func (s *PostgresSink) AddFinding(ctx context.Context, f model.Finding) error {
	s.mu.Lock()
	runID, seq := s.runID, s.seq
	s.seq++
	s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, insertFindingQuery,
		uuid.NewString(), runID, seq,
		string(f.Bot), f.ID, string(f.Severity), f.Message,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting finding: %w", err)
	}
	return nil
}

// Close releases the database handle
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
