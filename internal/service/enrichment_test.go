package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight_booking/internal/models"
)

var (
	testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	testDep = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	testArr = testDep.Add(8*time.Hour + 15*time.Minute)
)

func ba123() *models.Flight {
	return &models.Flight{
		ID:            "f-1",
		FlightNumber:  "BA123",
		Airline:       "British Airways",
		OriginID:      "LHR",
		DestinationID: "JFK",
		DepartureTime: testDep,
		ArrivalTime:   testArr,
		Duration:      "8h 15m",
		Status:        models.StatusBoarding,
	}
}

func TestShallowEnricher_BuildsFromPayload(t *testing.T) {
	e := NewShallowEnricher()
	e.now = fixedClock(testNow)

	ch := models.FlightChange{
		Previous: &models.FlightRow{Status: strPtr("SCHEDULED")},
		Current: models.FlightRow{
			ID:           strPtr("f-1"),
			FlightNumber: strPtr("BA123"),
			Airline:      strPtr("British Airways"),
			Status:       strPtr("BOARDING"),
		},
	}

	ev, err := e.Enrich(context.Background(), ch)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if ev.FlightID != "f-1" || ev.FlightNumber != "BA123" || ev.Airline != "British Airways" {
		t.Fatalf("unexpected identity fields: %+v", ev)
	}
	if ev.Status != models.StatusBoarding || !ev.UpdatedAt.Equal(testNow) {
		t.Fatalf("unexpected status/updatedAt: %+v", ev)
	}
	if ev.Message != "Flight BA123 is now boarding. Please proceed to the gate." {
		t.Fatalf("unexpected message %q", ev.Message)
	}
	if ev.DepartureTime != nil || ev.OriginID != "" {
		t.Fatalf("absent payload fields must stay empty: %+v", ev)
	}
}

func TestShallowEnricher_RequiresFlightNumber(t *testing.T) {
	_, err := NewShallowEnricher().Enrich(context.Background(), models.FlightChange{
		Current: models.FlightRow{ID: strPtr("f-1"), Status: strPtr("BOARDING")},
	})
	if !errors.Is(err, ErrIncompleteChange) {
		t.Fatalf("expected ErrIncompleteChange, got %v", err)
	}
}

func TestDeepEnricher(t *testing.T) {
	rowUpdated := time.Date(2025, 3, 1, 8, 59, 0, 0, time.UTC)

	tests := []struct {
		name      string
		change    models.FlightChange
		getByID   func(ctx context.Context, id string) (*models.Flight, error)
		wantErr   error
		anyErr    bool
		wantEvent func(t *testing.T, ev models.FlightStatusEvent)
	}{
		{
			name: "full record with change status",
			change: models.FlightChange{Current: models.FlightRow{
				ID:              strPtr("f-1"),
				Status:          strPtr("DELAYED"),
				StatusUpdatedAt: &rowUpdated,
			}},
			getByID: func(_ context.Context, id string) (*models.Flight, error) {
				if id != "f-1" {
					t.Fatalf("unexpected id %q", id)
				}
				return ba123(), nil
			},
			wantEvent: func(t *testing.T, ev models.FlightStatusEvent) {
				if ev.Status != models.StatusDelayed {
					t.Fatalf("status = %s, want DELAYED", ev.Status)
				}
				if ev.OriginID != "LHR" || ev.DestinationID != "JFK" || ev.Duration != "8h 15m" {
					t.Fatalf("missing record fields: %+v", ev)
				}
				if ev.DepartureTime == nil || !ev.DepartureTime.Equal(testDep) {
					t.Fatalf("unexpected departure: %v", ev.DepartureTime)
				}
				if !ev.UpdatedAt.Equal(rowUpdated) {
					t.Fatalf("updatedAt = %v, want %v", ev.UpdatedAt, rowUpdated)
				}
				if ev.Message != StatusMessage(models.StatusDelayed, "BA123") {
					t.Fatalf("unexpected message %q", ev.Message)
				}
			},
		},
		{
			name:    "missing id",
			change:  models.FlightChange{Current: models.FlightRow{Status: strPtr("DELAYED")}},
			wantErr: ErrIncompleteChange,
		},
		{
			name:   "row gone",
			change: models.FlightChange{Current: models.FlightRow{ID: strPtr("f-1"), Status: strPtr("DELAYED")}},
			getByID: func(context.Context, string) (*models.Flight, error) {
				return nil, nil
			},
			wantErr: ErrFlightNotFound,
		},
		{
			name:   "read failure",
			change: models.FlightChange{Current: models.FlightRow{ID: strPtr("f-1"), Status: strPtr("DELAYED")}},
			getByID: func(context.Context, string) (*models.Flight, error) {
				return nil, errors.New("connection refused")
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeFlightRepo{GetByIDFn: tt.getByID}
			e := NewDeepEnricher(repo)
			e.now = fixedClock(testNow)

			ev, err := e.Enrich(context.Background(), tt.change)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.wantEvent(t, ev)
		})
	}
}

func TestDeepEnricher_FallsBackToNow(t *testing.T) {
	repo := &fakeFlightRepo{GetByIDFn: func(context.Context, string) (*models.Flight, error) {
		return ba123(), nil
	}}
	e := NewDeepEnricher(repo)
	e.now = fixedClock(testNow)

	ev, err := e.Enrich(context.Background(), models.FlightChange{
		Current: models.FlightRow{ID: strPtr("f-1"), Status: strPtr("LANDED")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.UpdatedAt.Equal(testNow) {
		t.Fatalf("updatedAt = %v, want %v", ev.UpdatedAt, testNow)
	}
}
