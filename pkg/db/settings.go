package db

import (
	"context"
	"fmt"

	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/sheetssql"
)

const settingTable = "setting_record"

const (
	settingFamilyPassword = "family_password"
	settingAdminPassword  = "admin_password"
)

// GetSettings retrieves the shared passwords from the settings table. Keys
// missing from the store fall back to the given defaults.
func (db *DB) GetSettings(ctx context.Context, defaults model.Settings) (model.Settings, error) {
	records, err := sheetssql.GetTableAs[SettingRecord](db.ssql, settingTable)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := defaults
	for _, record := range records {
		switch record.Key {
		case settingFamilyPassword:
			settings.FamilyPassword = record.Value
		case settingAdminPassword:
			settings.AdminPassword = record.Value
		}
	}

	return settings, nil
}
