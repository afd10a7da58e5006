package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Options configures the connection pool and the change-notification schema.
type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	// FeedChannel is the NOTIFY channel the flights trigger publishes on.
	FeedChannel string
}

// InitDB opens a Postgres pool and ensures tables, the notify function and its trigger exist.
func InitDB(ctx context.Context, opts Options) (*sql.DB, error) {
	if !channelPattern.MatchString(opts.FeedChannel) {
		return nil, fmt.Errorf("invalid feed channel name %q", opts.FeedChannel)
	}

	db, err := sql.Open(pgxDriverName, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Fail fast if the DB cannot be reached
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := EnsureSchema(ctx, db, opts.FeedChannel); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const pgxDriverName = "pgx"

// channelPattern keeps the channel safe to splice into the trigger function body.
var channelPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

const schemaFlights = `
CREATE TABLE IF NOT EXISTS flights (
    id UUID PRIMARY KEY,
    flight_number TEXT NOT NULL,
    airline TEXT NOT NULL,
    origin_id TEXT NOT NULL,
    destination_id TEXT NOT NULL,
    departure_time TIMESTAMPTZ NOT NULL,
    arrival_time TIMESTAMPTZ NOT NULL,
    duration TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'SCHEDULED',
    status_updated_at TIMESTAMPTZ
);
`

const schemaFlightsNumberIndex = `
CREATE INDEX IF NOT EXISTS flights_flight_number_idx ON flights (flight_number, departure_time DESC);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// notifyFunctionTemplate emits one NOTIFY per row change carrying the before/after snapshots.
const notifyFunctionTemplate = `
CREATE OR REPLACE FUNCTION notify_flight_change() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('%s', json_build_object(
        'table', TG_TABLE_NAME,
        'type', TG_OP,
        'old', row_to_json(OLD),
        'new', row_to_json(NEW)
    )::text);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;
`

const dropFlightsTrigger = `DROP TRIGGER IF EXISTS flights_notify_update ON flights;`

const createFlightsTrigger = `
CREATE TRIGGER flights_notify_update
AFTER UPDATE ON flights
FOR EACH ROW EXECUTE FUNCTION notify_flight_change();
`

// EnsureSchema applies every DDL statement in one transaction.
func EnsureSchema(ctx context.Context, db *sql.DB, channel string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaFlights,
		schemaFlightsNumberIndex,
		schemaUsers,
		fmt.Sprintf(notifyFunctionTemplate, channel),
		dropFlightsTrigger,
		createFlightsTrigger,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
