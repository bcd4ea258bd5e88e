// Package trace persists simulation runs to SQLite for later
// inspection. Recording is optional: a nil *Store is a no-op on every
// method, so the engine driver never branches on tracing.
package trace

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/sim"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps one SQLite database. SQLite allows a single writer;
// the connection pool is pinned to one connection to avoid
// SQLITE_BUSY churn, and WAL mode keeps readers unblocked.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database and applies pragmas and schema.
// Idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to trace database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply trace schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Safe on nil.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordPass writes one halted pass and its steps in a single
// transaction. Safe on nil.
func (s *Store) RecordPass(structure *cex.Structure, cfg sim.Config, res *sim.PassResult) error {
	if s == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin trace transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO passes (token, structure, semantics, policy, started_at, halt_reason, steps, start_marking, final_marking)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Token, structure.Name, cfg.Semantics.String(), cfg.Policy.String(),
		time.Now().UTC().Format(time.RFC3339), res.Reason.String(), res.Steps,
		res.Start.Format(structure.Domain), res.Final.Format(structure.Domain),
	)
	if err != nil {
		return fmt.Errorf("failed to record pass: %w", err)
	}
	for _, step := range res.Trace {
		fired := make([]byte, 0, len(step.Fired)*3)
		for i, t := range step.Fired {
			if i > 0 {
				fired = append(fired, ',')
			}
			fired = append(fired, []byte(fmt.Sprintf("%d", t))...)
		}
		_, err = tx.Exec(
			`INSERT INTO steps (pass_token, step, fired, marking) VALUES (?, ?, ?, ?)`,
			res.Token, step.Step, string(fired), step.After.Format(structure.Domain),
		)
		if err != nil {
			return fmt.Errorf("failed to record step %d: %w", step.Step, err)
		}
	}
	return tx.Commit()
}

// PassSummary is one recorded pass row.
type PassSummary struct {
	Token      string
	Structure  string
	HaltReason string
	Steps      int
}

// Passes lists recorded passes, newest first.
func (s *Store) Passes() ([]PassSummary, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT token, structure, halt_reason, steps FROM passes ORDER BY started_at DESC, token DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query passes: %w", err)
	}
	defer rows.Close()

	var out []PassSummary
	for rows.Next() {
		var p PassSummary
		if err := rows.Scan(&p.Token, &p.Structure, &p.HaltReason, &p.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan pass row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
