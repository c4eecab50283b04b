package db

import (
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
	"github.com/kmoroney/carraig-house/pkg/sheetssql"
)

// DB provides booking database operations using SheetsSQL. Room sets are
// encoded to their wire form on the way in and decoded on the way out.
type DB struct {
	ssql    *sheetssql.DB
	catalog *rooms.Catalog
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB, catalog *rooms.Catalog) *DB {
	return &DB{
		ssql:    ssql,
		catalog: catalog,
	}
}

// Models lists the record structs the database schema is built from
func Models() []interface{} {
	return []interface{}{BookingRecord{}, ActivityRecord{}, SettingRecord{}}
}

func (db *DB) toRecord(booking model.Booking) BookingRecord {
	return BookingRecord{
		ID:        booking.ID,
		GuestName: booking.GuestName,
		Room:      db.catalog.Encode(booking.Rooms),
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Notes:     booking.Notes,
		PIN:       booking.PIN,
	}
}

func (db *DB) toBooking(record BookingRecord) model.Booking {
	return model.Booking{
		ID:        record.ID,
		GuestName: record.GuestName,
		Rooms:     db.catalog.Decode(record.Room),
		StartDate: record.StartDate,
		EndDate:   record.EndDate,
		Notes:     record.Notes,
		PIN:       record.PIN,
	}
}
