// Package history persists a ledger of report runs in an embedded sqlite
// database. The ledger is best-effort bookkeeping: a failure to record a
// run is logged by the caller and never fails the run itself.
package history

import (
	"context"
	"encoding/json"
	"time"

	"goeda/internal/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded report run.
type Entry struct {
	ID         string    `db:"id"`
	Dataset    string    `db:"dataset"`
	OutputDir  string    `db:"output_dir"`
	Status     string    `db:"status"`
	Stages     string    `db:"stages"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
}

// StageRecord is the per-stage outcome serialized into an Entry.
type StageRecord struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Artifact string `json:"artifact,omitempty"`
	Error    string `json:"error,omitempty"`
}

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	dataset TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	status TEXT NOT NULL,
	stages TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
)`

// Ledger stores run records.
type Ledger struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeHistoryError, errors.Wrapf(err, "failed to open history db %s", path))
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.WithCode(errors.CodeHistoryError, errors.Wrap(err, "failed to initialize history schema"))
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record appends one run to the ledger and returns its assigned ID.
func (l *Ledger) Record(ctx context.Context, dataset, outputDir, status string,
	stages []StageRecord, startedAt, finishedAt time.Time) (string, error) {

	stagesJSON, err := json.Marshal(stages)
	if err != nil {
		return "", errors.WithCode(errors.CodeHistoryError, errors.Wrap(err, "failed to marshal stage records"))
	}

	id := uuid.New().String()
	query := `INSERT INTO runs (id, dataset, output_dir, status, stages, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := l.db.ExecContext(ctx, query, id, dataset, outputDir, status, string(stagesJSON), startedAt, finishedAt); err != nil {
		return "", errors.WithCode(errors.CodeHistoryError, errors.Wrap(err, "failed to record run"))
	}
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []Entry
	query := `SELECT id, dataset, output_dir, status, stages, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`
	if err := l.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, errors.WithCode(errors.CodeHistoryError, errors.Wrap(err, "failed to list runs"))
	}
	return entries, nil
}

// StageRecords deserializes the per-stage outcomes of an entry.
func (e Entry) StageRecords() []StageRecord {
	var records []StageRecord
	if err := json.Unmarshal([]byte(e.Stages), &records); err != nil {
		return nil
	}
	return records
}
