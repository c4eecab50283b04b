package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// ActivityLog exposes the recorded activity entries, newest first
type ActivityLog interface {
	Entries() []model.ActivityEntry
}

// SettingsReader defines the database operations needed for authentication
type SettingsReader interface {
	GetSettings(ctx context.Context, defaults model.Settings) (model.Settings, error)
}

// ViewActivity returns the activity log after checking the password grants
// admin access. Family-level passwords are rejected.
func ViewActivity(ctx context.Context, database SettingsReader, log ActivityLog, logger *zap.Logger, password string, defaults model.Settings) ([]model.ActivityEntry, error) {
	settings, err := database.GetSettings(ctx, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	role, err := access.Authenticate(password, settings)
	if err != nil {
		return nil, err
	}
	if role != access.RoleAdmin {
		return nil, fmt.Errorf("activity log requires the admin password")
	}

	entries := log.Entries()
	logger.Debug("Loaded activity log", zap.Int("count", len(entries)))
	return entries, nil
}
