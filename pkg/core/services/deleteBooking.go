package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
)

// DeleteBookingArgs identifies the booking and carries the PIN candidate
type DeleteBookingArgs struct {
	ID  string
	PIN string
}

// DeleteBookingResult contains the deleted booking and the refreshed snapshot
type DeleteBookingResult struct {
	Booking  model.Booking
	Bookings []model.Booking
}

// DeleteBookingStore defines the database operations needed for deleting a booking
type DeleteBookingStore interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// DeleteBooking verifies the booking's PIN gate, removes the record and logs
// the prior state to the activity log
func DeleteBooking(ctx context.Context, database DeleteBookingStore, catalog *rooms.Catalog, recorder Recorder, gate access.Gate, logger *zap.Logger, args DeleteBookingArgs) (*DeleteBookingResult, error) {
	if args.ID == "" {
		return nil, fmt.Errorf("booking id is required")
	}

	bookings, err := database.GetBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	existing := findBooking(bookings, args.ID)
	if existing == nil {
		return nil, fmt.Errorf("booking %s not found", args.ID)
	}

	if err := gate.Verify(*existing, args.PIN); err != nil {
		return nil, err
	}

	logger.Info("Deleting booking",
		zap.String("id", existing.ID),
		zap.String("guest", existing.GuestName))

	if err := database.DeleteBooking(ctx, existing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}

	recorder.Record(model.ActionDelete, model.ActivityData{
		Record: snapshot(catalog, *existing),
	}, existing.ID)

	refreshed, err := LoadBookings(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("booking deleted but refresh failed: %w", err)
	}

	return &DeleteBookingResult{
		Booking:  *existing,
		Bookings: refreshed,
	}, nil
}
