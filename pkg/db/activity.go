package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/sheetssql"
)

const activityTable = "activity_record"

// InsertActivity mirrors one activity log entry to the remote store
func (db *DB) InsertActivity(entry model.ActivityEntry) error {
	data, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal activity data: %w", err)
	}

	session, err := json.Marshal(entry.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session info: %w", err)
	}

	record := ActivityRecord{
		ID:        entry.ID,
		Timestamp: entry.Timestamp.Format(time.RFC3339),
		Action:    string(entry.Action),
		BookingID: entry.BookingID,
		Data:      string(data),
		Session:   string(session),
	}

	if err := sheetssql.InsertModel(db.ssql, record); err != nil {
		return fmt.Errorf("failed to insert activity record: %w", err)
	}
	return nil
}

// GetActivity retrieves all mirrored activity entries, newest first
func (db *DB) GetActivity(ctx context.Context) ([]model.ActivityEntry, error) {
	records, err := sheetssql.GetTableAs[ActivityRecord](db.ssql, activityTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity records: %w", err)
	}

	entries := make([]model.ActivityEntry, 0, len(records))
	for _, record := range records {
		entry := model.ActivityEntry{
			ID:        record.ID,
			Action:    model.Action(record.Action),
			BookingID: record.BookingID,
		}

		if ts, err := time.Parse(time.RFC3339, record.Timestamp); err == nil {
			entry.Timestamp = ts
		}
		if record.Data != "" {
			_ = json.Unmarshal([]byte(record.Data), &entry.Data)
		}
		if record.Session != "" {
			_ = json.Unmarshal([]byte(record.Session), &entry.Session)
		}

		entries = append(entries, entry)
	}

	// Stored oldest first, served newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}
