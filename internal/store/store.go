// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/dictate/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored UTC timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			item_set TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			reference TEXT NOT NULL,
			candidate TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			incorrect_count INTEGER NOT NULL,
			substitutions INTEGER NOT NULL,
			insertions INTEGER NOT NULL,
			deletions INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_word_stats (
			attempt_id INTEGER NOT NULL,
			word TEXT NOT NULL,
			correct INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			PRIMARY KEY (attempt_id, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ended_at ON attempts(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_run_id ON attempts(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_word_stats_word ON attempt_word_stats(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a scored attempt and its per-word stats.
func (s *Store) InsertAttempt(ctx context.Context, stats model.AttemptStats, words []model.WordStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO attempts (run_id, started_at, ended_at, item_set, item_id, reference, candidate, score, max_score, incorrect_count, substitutions, insertions, deletions, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID,
		formatTime(stats.StartedAt),
		formatTime(stats.EndedAt),
		stats.Set,
		stats.ItemID,
		stats.Reference,
		stats.Candidate,
		stats.Score,
		stats.MaxScore,
		stats.IncorrectCount,
		stats.Substitutions,
		stats.Insertions,
		stats.Deletions,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(words) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO attempt_word_stats (attempt_id, word, correct, missed)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ws := range words {
			if _, err = stmt.ExecContext(ctx, id, ws.Word, ws.Correct, ws.Missed); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakWords aggregates word stats over the most recent attempts.
func (s *Store) GetWeakWords(ctx context.Context, window int, set string) ([]model.WordAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_attempts AS (
		SELECT id FROM attempts
		WHERE (? = '' OR item_set = ?)
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	)
	SELECT ws.word, SUM(ws.correct) AS correct, SUM(ws.missed) AS missed
	FROM attempt_word_stats ws
	JOIN recent_attempts r ON r.id = ws.attempt_id
	GROUP BY ws.word`

	rows, err := s.db.QueryContext(ctx, query, set, set, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanWordAggregates(rows)
}

// ListAttempts returns attempt aggregates filtered by stats config, oldest first.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.AttemptAggregate, error) {
	where, args := attemptFilter(cfg)
	query := fmt.Sprintf(`SELECT id, run_id, ended_at, score, max_score, incorrect_count, substitutions, insertions, deletions, duration_ms
		FROM attempts
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptAggregate
	for rows.Next() {
		var agg model.AttemptAggregate
		var endedAt string
		if err := rows.Scan(&agg.AttemptID, &agg.RunID, &endedAt, &agg.Score, &agg.MaxScore, &agg.IncorrectCount,
			&agg.Substitutions, &agg.Insertions, &agg.Deletions, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		attempts = append(attempts, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ListWordAggregatesForAttempts aggregates per-word stats across attempts.
func (s *Store) ListWordAggregatesForAttempts(ctx context.Context, attemptIDs []int64) ([]model.WordAggregate, error) {
	if len(attemptIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(attemptIDs))
	args := make([]any, len(attemptIDs))
	for i, id := range attemptIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT word, SUM(correct) AS correct, SUM(missed) AS missed
		FROM attempt_word_stats
		WHERE attempt_id IN (%s)
		GROUP BY word`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanWordAggregates(rows)
}

func attemptFilter(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Set != "" {
		clauses = append(clauses, "item_set = ?")
		args = append(args, cfg.Set)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	return strings.Join(clauses, " AND "), args
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func scanWordAggregates(rows *sql.Rows) ([]model.WordAggregate, error) {
	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Correct, &agg.Missed); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
