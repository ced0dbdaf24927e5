package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"setmore-schedules/models"
	"setmore-schedules/utils"
)

// PostgresWriter persists the cleaned bookings of each upload to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bookings (
			id          SERIAL PRIMARY KEY,
			batch_id    UUID         NOT NULL,
			event       VARCHAR(100) NOT NULL,
			position    INTEGER      NOT NULL,
			slot        TIMESTAMP    NOT NULL,
			name        TEXT         NOT NULL,
			category    TEXT         NOT NULL DEFAULT '',
			shirt_size  VARCHAR(20)  NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			UNIQUE (batch_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_batch    ON bookings(batch_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_slot     ON bookings(slot);
		CREATE INDEX IF NOT EXISTS idx_bookings_category ON bookings(category);
	`)
	return err
}

// Write batch-inserts the cleaned bookings of one upload in a single transaction.
func (pw *PostgresWriter) Write(ctx context.Context, e *Export) error {
	if len(e.Bookings) == 0 {
		return nil
	}

	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const batchSize = 50
	for i := 0; i < len(e.Bookings); i += batchSize {
		end := i + batchSize
		if end > len(e.Bookings) {
			end = len(e.Bookings)
		}
		if err := insertBatch(ctx, tx, e, i, e.Bookings[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, e *Export, offset int, batch []models.Booking) error {
	const cols = 7
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, b := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			e.BatchID.String(), e.Event, offset+idx, b.Timestamp, b.Name, b.Category, b.ShirtSize)
	}

	query := fmt.Sprintf(`
		INSERT INTO bookings (batch_id, event, position, slot, name, category, shirt_size)
		VALUES %s
		ON CONFLICT (batch_id, position) DO NOTHING
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch at %d: %w", offset, err)
	}
	return nil
}

// FetchBatch retrieves the bookings stored for one upload in their original order.
func (pw *PostgresWriter) FetchBatch(ctx context.Context, batchID uuid.UUID) ([]models.Booking, error) {
	rows, err := pw.db.QueryContext(ctx, `
		SELECT slot, name, category, shirt_size
		FROM bookings
		WHERE batch_id = $1
		ORDER BY position
	`, batchID.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch batch: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.Timestamp, &b.Name, &b.Category, &b.ShirtSize); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		b.Timestamp = naive(b.Timestamp)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// naive keeps the wall clock of a TIMESTAMP column and drops whatever zone the driver attached.
func naive(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
