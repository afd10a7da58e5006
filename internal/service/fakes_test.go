package service

import (
	"context"
	"sync"
	"time"

	"flight_booking/internal/models"
	"flight_booking/internal/repository"
)

// fakeFlightRepo is an in-test repository.FlightRepo with overridable behaviour.
type fakeFlightRepo struct {
	GetByIDFn           func(ctx context.Context, id string) (*models.Flight, error)
	GetByFlightNumberFn func(ctx context.Context, flightNumber string) (*models.Flight, error)
	UpdateStatusFn      func(ctx context.Context, id string, status models.FlightStatus, at time.Time) (bool, error)

	mu          sync.Mutex
	updateCalls []updateCall
}

type updateCall struct {
	id     string
	status models.FlightStatus
	at     time.Time
}

func (r *fakeFlightRepo) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	return r.GetByIDFn(ctx, id)
}

func (r *fakeFlightRepo) GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	return r.GetByFlightNumberFn(ctx, flightNumber)
}

func (r *fakeFlightRepo) List(context.Context, models.FlightFilter) ([]models.Flight, error) {
	return nil, nil
}

func (r *fakeFlightRepo) Insert(_ context.Context, flights ...models.Flight) ([]models.Flight, error) {
	return flights, nil
}

func (r *fakeFlightRepo) UpdateStatus(ctx context.Context, id string, status models.FlightStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	r.updateCalls = append(r.updateCalls, updateCall{id: id, status: status, at: at})
	r.mu.Unlock()
	return r.UpdateStatusFn(ctx, id, status, at)
}

func (r *fakeFlightRepo) updates() []updateCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]updateCall(nil), r.updateCalls...)
}

// fakeFeed replays a fixed list of changes, then holds the subscription until cancelled.
type fakeFeed struct {
	changes []repository.RawChange
	onState func(bool)
}

func (f *fakeFeed) OnState(fn func(bool)) { f.onState = fn }

func (f *fakeFeed) Listen(ctx context.Context, out chan<- repository.RawChange) error {
	if f.onState != nil {
		f.onState(true)
		defer f.onState(false)
	}
	for _, c := range f.changes {
		select {
		case out <- c:
		case <-ctx.Done():
			return nil
		}
	}
	<-ctx.Done()
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
