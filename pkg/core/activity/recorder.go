// Package activity keeps the append-only log of booking mutations. The local
// copy is authoritative for viewing; mirroring to the remote store is a
// non-critical side effect whose failures never reach the caller.
package activity

import (
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// MaxEntries caps the log; the oldest entries are evicted first
const MaxEntries = 1000

// LocalStore persists the whole log as one blob
type LocalStore interface {
	Load() ([]model.ActivityEntry, error)
	Save(entries []model.ActivityEntry) error
}

// Mirror forwards single entries to the remote store best-effort
type Mirror interface {
	InsertActivity(entry model.ActivityEntry) error
}

// Recorder owns the in-memory log, newest first
type Recorder struct {
	store   LocalStore
	mirror  Mirror
	session model.SessionInfo
	now     func() time.Time
	lastID  int64
	entries []model.ActivityEntry
}

// NewRecorder loads any existing local log. A missing or corrupted local log
// starts empty rather than failing; the recorder must never block bookings.
func NewRecorder(store LocalStore, mirror Mirror, session model.SessionInfo) *Recorder {
	r := &Recorder{
		store:   store,
		mirror:  mirror,
		session: session,
		now:     time.Now,
	}

	if store != nil {
		if entries, err := store.Load(); err == nil {
			r.entries = entries
			if len(entries) > 0 {
				r.lastID = entries[0].ID
			}
		}
	}

	return r
}

// Record appends an entry for a booking mutation: prepend, cap, persist the
// whole local log, then mirror the single new entry. Local persistence and
// mirroring are both best-effort.
func (r *Recorder) Record(action model.Action, data model.ActivityData, bookingID string) model.ActivityEntry {
	now := r.now()

	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	entry := model.ActivityEntry{
		ID:        id,
		Timestamp: now,
		Action:    action,
		BookingID: bookingID,
		Data:      data,
		Session:   r.session,
	}

	r.entries = append([]model.ActivityEntry{entry}, r.entries...)
	if len(r.entries) > MaxEntries {
		r.entries = r.entries[:MaxEntries]
	}

	if r.store != nil {
		_ = r.store.Save(r.entries)
	}
	if r.mirror != nil {
		_ = r.mirror.InsertActivity(entry)
	}

	return entry
}

// Entries returns a copy of the log, newest first. Callers may reslice or
// sort the result without corrupting the recorder.
func (r *Recorder) Entries() []model.ActivityEntry {
	return append([]model.ActivityEntry(nil), r.entries...)
}

// CurrentSession captures metadata identifying this process for log entries
func CurrentSession() model.SessionInfo {
	hostname, _ := os.Hostname()
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}

	return model.SessionInfo{
		SessionID: uuid.New().String(),
		Hostname:  hostname,
		OS:        runtime.GOOS,
		User:      user,
	}
}
