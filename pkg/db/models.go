package db

// BookingRecord is the wire form of a booking. The room column holds the
// encoded room set: a single room id, a comma-joined list, or "Entire House".
type BookingRecord struct {
	ID        string `ssql_header:"id" ssql_type:"uuid"`
	GuestName string `ssql_header:"guest_name" ssql_type:"text"`
	Room      string `ssql_header:"room" ssql_type:"text"`
	StartDate string `ssql_header:"start_date" ssql_type:"date"`
	EndDate   string `ssql_header:"end_date" ssql_type:"date"`
	Notes     string `ssql_header:"notes" ssql_type:"text"`
	PIN       string `ssql_header:"pin" ssql_type:"text"`
}

// ActivityRecord is the wire form of an activity log entry. Data and Session
// carry the entry payload and session metadata as JSON blobs.
type ActivityRecord struct {
	ID        int64  `ssql_header:"id" ssql_type:"int"`
	Timestamp string `ssql_header:"timestamp" ssql_type:"text"`
	Action    string `ssql_header:"action" ssql_type:"text"`
	BookingID string `ssql_header:"booking_id" ssql_type:"uuid"`
	Data      string `ssql_header:"data" ssql_type:"text"`
	Session   string `ssql_header:"session" ssql_type:"text"`
}

// SettingRecord is a key/value settings row
type SettingRecord struct {
	Key   string `ssql_header:"key" ssql_type:"text"`
	Value string `ssql_header:"value" ssql_type:"text"`
}
