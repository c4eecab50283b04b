package model

import "time"

// EntireHouse is the pseudo-room meaning all physical rooms at once.
// It is never bookable alongside a partial booking.
const EntireHouse = "Entire House"

// Room represents one of the physical rooms in the house
type Room struct {
	ID    string
	Title string
}

// Booking represents a stay covering the half-open interval [StartDate, EndDate).
// The end date is the departure day and is free for a new check-in.
type Booking struct {
	ID        string
	GuestName string
	Rooms     []string // room IDs in configured order; all rooms = entire house
	StartDate string   // YYYY-MM-DD, local calendar day
	EndDate   string   // YYYY-MM-DD, local calendar day
	Notes     string
	PIN       string // optional, gates edit/delete
}

// Action identifies a booking mutation recorded in the activity log
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) IsValid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// BookingSnapshot is the booking data captured in an activity entry
type BookingSnapshot struct {
	GuestName string `json:"guestName"`
	Room      string `json:"room"` // wire encoding: single id, comma-joined set, or Entire House
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes,omitempty"`
}

// ActivityData carries the action-specific payload of an activity entry.
// Create and delete fill Record; update fills Old and New.
type ActivityData struct {
	Record *BookingSnapshot `json:"record,omitempty"`
	Old    *BookingSnapshot `json:"old,omitempty"`
	New    *BookingSnapshot `json:"new,omitempty"`
}

// SessionInfo is opaque metadata attached to every activity entry
type SessionInfo struct {
	SessionID string `json:"sessionId"`
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	User      string `json:"user"`
}

// ActivityEntry is one append-only record of a booking mutation
type ActivityEntry struct {
	ID        int64        `json:"id"` // milliseconds since epoch, strictly monotonic per recorder
	Timestamp time.Time    `json:"timestamp"`
	Action    Action       `json:"action"`
	BookingID string       `json:"bookingId"`
	Data      ActivityData `json:"data"`
	Session   SessionInfo  `json:"sessionInfo"`
}

// Settings holds the shared-secret passwords served by the remote store
type Settings struct {
	FamilyPassword string
	AdminPassword  string
}
