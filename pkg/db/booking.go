package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/sheetssql"
)

// ErrBookingNotFound is returned when no stored booking matches the given ID
var ErrBookingNotFound = fmt.Errorf("booking not found")

const bookingTable = "booking_record"

// GetBookings retrieves all booking records
func (db *DB) GetBookings(ctx context.Context) ([]model.Booking, error) {
	records, err := sheetssql.GetTableAs[BookingRecord](db.ssql, bookingTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	bookings := make([]model.Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, db.toBooking(record))
	}
	return bookings, nil
}

// InsertBooking inserts a new booking record, assigning an ID if the booking
// doesn't have one. The assigned ID is written back to the booking.
func (db *DB) InsertBooking(ctx context.Context, booking *model.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	if err := sheetssql.InsertModel(db.ssql, db.toRecord(*booking)); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// UpdateBooking overwrites the stored record matching the booking's ID
func (db *DB) UpdateBooking(ctx context.Context, booking model.Booking) error {
	rowNumber, err := db.findBookingRow(booking.ID)
	if err != nil {
		return err
	}

	if err := sheetssql.UpdateModelRow(db.ssql, rowNumber, db.toRecord(booking)); err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	return nil
}

// DeleteBooking removes the stored record matching the given ID
func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	rowNumber, err := db.findBookingRow(id)
	if err != nil {
		return err
	}

	if err := db.ssql.DeleteRow(bookingTable, rowNumber); err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	return nil
}

func (db *DB) findBookingRow(id string) (int, error) {
	rows, err := sheetssql.GetTableRows[BookingRecord](db.ssql, bookingTable)
	if err != nil {
		return 0, fmt.Errorf("failed to get bookings: %w", err)
	}

	for _, row := range rows {
		if row.Value.ID == id {
			return row.RowNumber, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}
