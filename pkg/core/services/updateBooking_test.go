package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/model"
)

func strPtr(s string) *string { return &s }

func TestUpdateBooking_ChangesDatesAndGuest(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Twin"}, StartDate: "2026-06-01", EndDate: "2026-06-04"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID:        "b-1",
		GuestName: strPtr("Deirdre"),
		StartDate: strPtr("2026-06-02"),
		EndDate:   strPtr("2026-06-06"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Deirdre", result.Booking.GuestName)
	assert.Equal(t, "2026-06-02", result.Booking.StartDate)
	assert.Equal(t, []string{"Twin"}, result.Booking.Rooms)

	require.Len(t, mock.updated, 1)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, model.ActionUpdate, entry.Action)
	require.NotNil(t, entry.Data.Old)
	require.NotNil(t, entry.Data.New)
	assert.Equal(t, "Carol", entry.Data.Old.GuestName)
	assert.Equal(t, "Deirdre", entry.Data.New.GuestName)
}

func TestUpdateBooking_DoesNotConflictWithItself(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Master"}, StartDate: "2026-06-01", EndDate: "2026-06-04"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	// Extending the stay overlaps the booking's own current dates
	result, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID:      "b-1",
		EndDate: strPtr("2026-06-07"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-07", result.Booking.EndDate)
}

func TestUpdateBooking_ConflictWithOtherBooking(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Master"}, StartDate: "2026-06-01", EndDate: "2026-06-04"},
			{ID: "b-2", GuestName: "Kevin", Rooms: []string{"Master"}, StartDate: "2026-06-04", EndDate: "2026-06-08"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID:      "b-1",
		EndDate: strPtr("2026-06-06"),
	})
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "not available")
	assert.Empty(t, mock.updated)
	assert.Empty(t, recorder.entries)
}

func TestUpdateBooking_PINGate(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Twin"}, StartDate: "2026-06-01", EndDate: "2026-06-04", PIN: "secret"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	// Wrong PIN rejected
	_, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID:        "b-1",
		GuestName: strPtr("X"),
		PIN:       "wrong",
	})
	assert.ErrorIs(t, err, access.ErrPINMismatch)
	assert.Empty(t, mock.updated)

	// Admin bypasses the gate
	result, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{Admin: true}, logger, UpdateBookingArgs{
		ID:        "b-1",
		GuestName: strPtr("Deirdre"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Deirdre", result.Booking.GuestName)
}

func TestUpdateBooking_NotFound(t *testing.T) {
	mock := &mockStore{}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID: "missing",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateBooking_RemoteFailureLeavesLogUntouched(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Twin"}, StartDate: "2026-06-01", EndDate: "2026-06-04"},
		},
		updateErr: fmt.Errorf("sheet unreachable"),
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := UpdateBooking(ctx, mock, testEngine(), recorder, access.Gate{}, logger, UpdateBookingArgs{
		ID:        "b-1",
		GuestName: strPtr("Deirdre"),
	})
	assert.Error(t, err)
	assert.Empty(t, recorder.entries)
}
