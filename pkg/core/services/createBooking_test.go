package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/availability"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
)

// mockStore implements a test double for db.DB
type mockStore struct {
	bookings []model.Booking

	inserted []model.Booking
	updated  []model.Booking
	deleted  []string

	getErr    error
	insertErr error
	updateErr error
	deleteErr error

	settings    model.Settings
	settingsErr error
}

func (m *mockStore) GetBookings(ctx context.Context) ([]model.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bookings, nil
}

func (m *mockStore) InsertBooking(ctx context.Context, booking *model.Booking) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if booking.ID == "" {
		booking.ID = fmt.Sprintf("booking-%d", len(m.inserted)+1)
	}
	m.inserted = append(m.inserted, *booking)
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockStore) UpdateBooking(ctx context.Context, booking model.Booking) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, booking)
	for i := range m.bookings {
		if m.bookings[i].ID == booking.ID {
			m.bookings[i] = booking
		}
	}
	return nil
}

func (m *mockStore) DeleteBooking(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	remaining := make([]model.Booking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		if booking.ID != id {
			remaining = append(remaining, booking)
		}
	}
	m.bookings = remaining
	return nil
}

func (m *mockStore) GetSettings(ctx context.Context, defaults model.Settings) (model.Settings, error) {
	if m.settingsErr != nil {
		return model.Settings{}, m.settingsErr
	}
	return m.settings, nil
}

// mockRecorder captures activity log calls
type mockRecorder struct {
	entries []model.ActivityEntry
}

func (m *mockRecorder) Record(action model.Action, data model.ActivityData, bookingID string) model.ActivityEntry {
	entry := model.ActivityEntry{
		ID:        int64(len(m.entries) + 1),
		Action:    action,
		BookingID: bookingID,
		Data:      data,
	}
	m.entries = append(m.entries, entry)
	return entry
}

func (m *mockRecorder) Entries() []model.ActivityEntry {
	return m.entries
}

func testEngine() *availability.Engine {
	catalog := rooms.NewCatalog([]model.Room{
		{ID: "Master", Title: "Master Room"},
		{ID: "Twin", Title: "Twin Room"},
		{ID: "Bunk", Title: "Bunk Room"},
	})
	return availability.NewEngine(catalog)
}

func TestCreateBooking_SingleRoom(t *testing.T) {
	mock := &mockStore{}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := CreateBooking(ctx, mock, testEngine(), recorder, logger, CreateBookingArgs{
		GuestName: "Kevin",
		Rooms:     []string{"Master"},
		StartDate: "2026-06-01",
		EndDate:   "2026-06-04",
		PIN:       "  super   secret ",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Booking.ID)
	assert.Equal(t, "Kevin", result.Booking.GuestName)
	assert.Equal(t, []string{"Master"}, result.Booking.Rooms)
	assert.Equal(t, "super secret", result.Booking.PIN)

	require.Len(t, mock.inserted, 1)
	assert.Len(t, result.Bookings, 1)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, model.ActionCreate, entry.Action)
	assert.Equal(t, result.Booking.ID, entry.BookingID)
	require.NotNil(t, entry.Data.Record)
	assert.Equal(t, "Master", entry.Data.Record.Room)
}

func TestCreateBooking_EntireHouse(t *testing.T) {
	mock := &mockStore{}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := CreateBooking(ctx, mock, testEngine(), recorder, logger, CreateBookingArgs{
		GuestName: "Niamh",
		Rooms:     []string{model.EntireHouse},
		StartDate: "2026-07-10",
		EndDate:   "2026-07-17",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Master", "Twin", "Bunk"}, result.Booking.Rooms)

	require.Len(t, recorder.entries, 1)
	require.NotNil(t, recorder.entries[0].Data.Record)
	assert.Equal(t, model.EntireHouse, recorder.entries[0].Data.Record.Room)
}

func TestCreateBooking_RoomConflict(t *testing.T) {
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Master"}, StartDate: "2026-06-02", EndDate: "2026-06-05"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := CreateBooking(ctx, mock, testEngine(), recorder, logger, CreateBookingArgs{
		GuestName: "Kevin",
		Rooms:     []string{"Master"},
		StartDate: "2026-06-01",
		EndDate:   "2026-06-04",
	})
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "not available")

	// Nothing written, nothing recorded
	assert.Empty(t, mock.inserted)
	assert.Empty(t, recorder.entries)
}

func TestCreateBooking_CheckoutDayIsFree(t *testing.T) {
	// Existing guest leaves on the 4th, new guest arrives the same day
	mock := &mockStore{
		bookings: []model.Booking{
			{ID: "b-1", GuestName: "Carol", Rooms: []string{"Master"}, StartDate: "2026-06-01", EndDate: "2026-06-04"},
		},
	}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := CreateBooking(ctx, mock, testEngine(), recorder, logger, CreateBookingArgs{
		GuestName: "Kevin",
		Rooms:     []string{"Master"},
		StartDate: "2026-06-04",
		EndDate:   "2026-06-06",
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCreateBooking_Validation(t *testing.T) {
	mock := &mockStore{}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()
	engine := testEngine()

	tests := []struct {
		name    string
		args    CreateBookingArgs
		wantErr string
	}{
		{
			name:    "missing guest",
			args:    CreateBookingArgs{Rooms: []string{"Master"}, StartDate: "2026-06-01", EndDate: "2026-06-02"},
			wantErr: "guest name is required",
		},
		{
			name:    "no rooms",
			args:    CreateBookingArgs{GuestName: "Kevin", StartDate: "2026-06-01", EndDate: "2026-06-02"},
			wantErr: "at least one room",
		},
		{
			name:    "unknown room",
			args:    CreateBookingArgs{GuestName: "Kevin", Rooms: []string{"Attic"}, StartDate: "2026-06-01", EndDate: "2026-06-02"},
			wantErr: "unknown room",
		},
		{
			name:    "malformed date",
			args:    CreateBookingArgs{GuestName: "Kevin", Rooms: []string{"Master"}, StartDate: "June 1st", EndDate: "2026-06-02"},
			wantErr: "invalid check-in date",
		},
		{
			name:    "checkout before checkin",
			args:    CreateBookingArgs{GuestName: "Kevin", Rooms: []string{"Master"}, StartDate: "2026-06-05", EndDate: "2026-06-05"},
			wantErr: "must be after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CreateBooking(ctx, mock, engine, recorder, logger, tt.args)
			assert.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Empty(t, mock.inserted)
	assert.Empty(t, recorder.entries)
}

func TestCreateBooking_InsertFailure(t *testing.T) {
	mock := &mockStore{insertErr: fmt.Errorf("sheet unreachable")}
	recorder := &mockRecorder{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := CreateBooking(ctx, mock, testEngine(), recorder, logger, CreateBookingArgs{
		GuestName: "Kevin",
		Rooms:     []string{"Master"},
		StartDate: "2026-06-01",
		EndDate:   "2026-06-02",
	})
	assert.Error(t, err)
	assert.Nil(t, result)

	// Failed insert must not reach the activity log
	assert.Empty(t, recorder.entries)
}
