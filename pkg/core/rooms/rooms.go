// Package rooms converts between room-ID sets and the wire encoding used by
// the booking store: "Entire House", a single room ID, or a comma-joined set.
// The delimited form never leaks past this package; the rest of the app works
// with decoded sets.
package rooms

import (
	"sort"
	"strings"

	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// Catalog holds the configured physical rooms in display order
type Catalog struct {
	rooms []model.Room
	index map[string]int // room ID -> configured position
}

// NewCatalog creates a catalog from the configured room list
func NewCatalog(rooms []model.Room) *Catalog {
	index := make(map[string]int, len(rooms))
	for i, room := range rooms {
		index[room.ID] = i
	}
	return &Catalog{rooms: rooms, index: index}
}

// Rooms returns the configured rooms in order
func (c *Catalog) Rooms() []model.Room {
	return c.rooms
}

// IDs returns the configured room IDs in order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.rooms))
	for i, room := range c.rooms {
		ids[i] = room.ID
	}
	return ids
}

// Contains reports whether id names a configured room
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Title returns the display name for a room ID, or the ID itself when unknown
func (c *Catalog) Title(id string) string {
	if pos, ok := c.index[id]; ok {
		return c.rooms[pos].Title
	}
	return id
}

// Encode converts a room-ID set to its wire form: "Entire House" when the set
// covers every configured room, the bare ID for a singleton, otherwise a
// comma-joined list in configured order (not selection order).
func (c *Catalog) Encode(ids []string) string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return ""
	}

	if c.coversAll(seen) {
		return model.EntireHouse
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return c.position(unique[i]) < c.position(unique[j])
	})

	return strings.Join(unique, ", ")
}

// Decode expands a wire value to a room-ID set. "Entire House" expands to
// every configured room; a comma-joined value splits and trims each token;
// anything else is a singleton. Unknown tokens are kept so hand-edited store
// rows still survive a round-trip.
func (c *Catalog) Decode(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if value == model.EntireHouse {
		return c.IDs()
	}

	if !strings.Contains(value, ",") {
		return []string{value}
	}

	parts := strings.Split(value, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// IsEntireHouse reports whether the given set covers every configured room
func (c *Catalog) IsEntireHouse(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[strings.TrimSpace(id)] = true
	}
	return c.coversAll(seen)
}

func (c *Catalog) coversAll(seen map[string]bool) bool {
	if len(c.rooms) == 0 {
		return false
	}
	for _, room := range c.rooms {
		if !seen[room.ID] {
			return false
		}
	}
	return true
}

// position orders configured rooms first, unknown IDs after in input order
func (c *Catalog) position(id string) int {
	if pos, ok := c.index[id]; ok {
		return pos
	}
	return len(c.rooms)
}
