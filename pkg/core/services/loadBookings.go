package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// BookingReader defines the database operations needed to load bookings
type BookingReader interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
}

// LoadBookings fetches the full booking snapshot from the store, sorted by
// start date. Each load replaces whatever the caller held before.
func LoadBookings(ctx context.Context, database BookingReader, logger *zap.Logger) ([]model.Booking, error) {
	logger.Debug("Fetching bookings")

	bookings, err := database.GetBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartDate < bookings[j].StartDate
	})

	logger.Debug("Loaded bookings", zap.Int("count", len(bookings)))
	return bookings, nil
}
