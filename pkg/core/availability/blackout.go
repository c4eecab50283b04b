package availability

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
)

// Blackout marks recurring days on which the whole house is unavailable,
// e.g. an owner week or a maintenance day. Blackout days behave exactly like
// entire-house bookings.
type Blackout struct {
	Rule   *rrule.RRule
	Reason string
}

// NewBlackout parses an RFC 5545 recurrence string into a blackout rule
func NewBlackout(rruleStr, reason string) (Blackout, error) {
	rule, err := rrule.StrToRRule(rruleStr)
	if err != nil {
		return Blackout{}, err
	}
	return Blackout{Rule: rule, Reason: reason}, nil
}

func (e *Engine) isBlackout(day time.Time) bool {
	for _, blackout := range e.blackouts {
		if blackout.occursOn(day) {
			return true
		}
	}
	return false
}

// occursOn widens the probe window by a day on each side so that rule
// occurrences generated in a different zone still match the local day
func (b Blackout) occursOn(day time.Time) bool {
	if b.Rule == nil {
		return false
	}

	window := b.Rule.Between(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), true)
	for _, occurrence := range window {
		if dateutil.IsSameDay(occurrence.In(time.Local), day) {
			return true
		}
	}
	return false
}
