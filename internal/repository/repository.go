package repository

import (
	"context"
	"database/sql"
	"time"

	"flight_booking/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// FlightRepo is the point/filtered read and write surface over the flights table.
type FlightRepo interface {
	GetByID(ctx context.Context, id string) (*models.Flight, error)
	GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error)
	List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, error)
	Insert(ctx context.Context, flights ...models.Flight) ([]models.Flight, error)
	UpdateStatus(ctx context.Context, id string, status models.FlightStatus, at time.Time) (bool, error)
}

// ChangeFeed delivers row changes of the flights table into out until ctx is done.
type ChangeFeed interface {
	Listen(ctx context.Context, out chan<- RawChange) error
}

type Repository struct {
	Flights FlightRepo
	Auth    Authorization
	Changes ChangeFeed
}

func NewRepository(db *sql.DB, feed ChangeFeed) *Repository {
	return &Repository{
		Flights: NewFlightPostgres(db),
		Auth:    NewUserRepository(db),
		Changes: feed,
	}
}
