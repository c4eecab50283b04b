package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseSheetID: "sheet-123",
		Rooms: []RoomConfig{
			{ID: "Master", Title: "Master Room"},
			{ID: "Twin", Title: "Twin Room"},
			{ID: "Bunk", Title: "Bunk Room"},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_MissingSheetID(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseSheetID = ""

	err := Validate(cfg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_WrongRoomCount(t *testing.T) {
	cfg := validConfig()
	cfg.Rooms = cfg.Rooms[:2]

	assert.Error(t, Validate(cfg))
}

func TestValidate_RoomMissingTitle(t *testing.T) {
	cfg := validConfig()
	cfg.Rooms[1].Title = ""

	assert.Error(t, Validate(cfg))
}

func TestValidate_ValidBlackoutRRule(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []BlackoutConfig{{RRule: "FREQ=WEEKLY;BYDAY=MO", Reason: "cleaning"}}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_InvalidBlackoutRRule(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []BlackoutConfig{{RRule: "FREQ=NOTAFREQ"}}

	err := Validate(cfg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blackouts[0]")
}

func TestLoadFromPath(t *testing.T) {
	content := `databaseSheetID: sheet-123
rooms:
  - id: Master
    title: Master Room
  - id: Twin
    title: Twin Room
  - id: Bunk
    title: Bunk Room
guestNames:
  - Kevin
  - Niamh
blackouts:
  - rrule: FREQ=YEARLY;BYMONTH=8;BYMONTHDAY=1
    reason: owner week
defaultFamilyPassword: seashell
`
	path := filepath.Join(t.TempDir(), "carraig_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "sheet-123", cfg.DatabaseSheetID)
	assert.Len(t, cfg.Rooms, 3)
	assert.Equal(t, []string{"Kevin", "Niamh"}, cfg.GuestNames)
	assert.Equal(t, "owner week", cfg.Blackouts[0].Reason)
	assert.Equal(t, "seashell", cfg.DefaultFamilyPassword)
	// Default applied when unset
	assert.Equal(t, "carraig_activity.json", cfg.ActivityLogPath)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
