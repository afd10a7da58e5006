package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight_booking/internal/models"

	"github.com/google/uuid"
)

type FlightPostgres struct {
	db *sql.DB
}

func NewFlightPostgres(db *sql.DB) *FlightPostgres { return &FlightPostgres{db: db} }

var _ FlightRepo = (*FlightPostgres)(nil)

const (
	flightColumns = `id, flight_number, airline, origin_id, destination_id, departure_time, arrival_time, duration, status, status_updated_at`

	selectFlightByIDSQL = `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`

	// several rows may share a flight number; the latest departure wins
	selectFlightByNumberSQL = `SELECT ` + flightColumns + ` FROM flights WHERE flight_number = $1 ORDER BY departure_time DESC LIMIT 1`

	selectFlightsSQL = `SELECT ` + flightColumns + ` FROM flights`

	insertFlightSQL = `
		INSERT INTO flights (id, flight_number, airline, origin_id, destination_id, departure_time, arrival_time, duration, status, status_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	updateFlightStatusSQL = `UPDATE flights SET status = $1, status_updated_at = $2 WHERE id = $3`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (models.Flight, error) {
	var (
		f         models.Flight
		status    string
		updatedAt sql.NullTime
	)
	if err := row.Scan(
		&f.ID, &f.FlightNumber, &f.Airline, &f.OriginID, &f.DestinationID,
		&f.DepartureTime, &f.ArrivalTime, &f.Duration, &status, &updatedAt,
	); err != nil {
		return models.Flight{}, err
	}
	f.Status = models.FlightStatus(status)
	f.DepartureTime = f.DepartureTime.UTC()
	f.ArrivalTime = f.ArrivalTime.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		f.StatusUpdatedAt = &t
	}
	return f, nil
}

// GetByID returns the flight with the given row id, or (nil, nil) when absent.
func (r *FlightPostgres) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	f, err := scanFlight(r.db.QueryRowContext(ctx, selectFlightByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select flight %q: %w", id, err)
	}
	return &f, nil
}

// GetByFlightNumber returns the latest-departing flight with that number, or (nil, nil) when absent.
func (r *FlightPostgres) GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	f, err := scanFlight(r.db.QueryRowContext(ctx, selectFlightByNumberSQL, flightNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select flight by number %q: %w", flightNumber, err)
	}
	return &f, nil
}

// List returns flights matching the filter, ordered by departure time ASC.
func (r *FlightPostgres) List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if v := strings.TrimSpace(filter.OriginID); v != "" {
		add("origin_id = $%d", v)
	}
	if v := strings.TrimSpace(filter.DestinationID); v != "" {
		add("destination_id = $%d", v)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if !filter.DepartureFrom.IsZero() {
		add("departure_time >= $%d", filter.DepartureFrom.UTC())
	}
	if !filter.DepartureTo.IsZero() {
		add("departure_time <= $%d", filter.DepartureTo.UTC())
	}

	q := selectFlightsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY departure_time ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	out := make([]models.Flight, 0, 32)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flights: %w", err)
	}
	return out, nil
}

// Insert stores one or more flights in a single transaction.
// Empty ids are assigned and an empty status defaults to SCHEDULED; the stored rows are returned.
func (r *FlightPostgres) Insert(ctx context.Context, flights ...models.Flight) ([]models.Flight, error) {
	if len(flights) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert flights: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.Status == "" {
			f.Status = models.StatusScheduled
		}
		if !f.Status.Valid() {
			return nil, fmt.Errorf("insert flight %q: %w", f.FlightNumber, models.ErrInvalidStatus)
		}
		f.DepartureTime = f.DepartureTime.UTC()
		f.ArrivalTime = f.ArrivalTime.UTC()

		var updatedAt any
		if f.StatusUpdatedAt != nil {
			updatedAt = f.StatusUpdatedAt.UTC()
		}

		if _, err := tx.ExecContext(ctx, insertFlightSQL,
			f.ID, f.FlightNumber, f.Airline, f.OriginID, f.DestinationID,
			f.DepartureTime, f.ArrivalTime, f.Duration, string(f.Status), updatedAt,
		); err != nil {
			return nil, fmt.Errorf("insert flight %q: %w", f.FlightNumber, err)
		}
		out = append(out, f)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert flights: %w", err)
	}
	return out, nil
}

// UpdateStatus writes status and status_updated_at on the row with the given id.
// It reports false when no row matched.
func (r *FlightPostgres) UpdateStatus(ctx context.Context, id string, status models.FlightStatus, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateFlightStatusSQL, string(status), at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("update flight %q status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for flight %q: %w", id, err)
	}
	return n > 0, nil
}
