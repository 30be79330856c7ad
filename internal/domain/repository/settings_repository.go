package repository

import (
	"context"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

// SettingsRepository defines the interface for shop settings data access
type SettingsRepository interface {
	// Get returns the settings row, or nil when none has been saved yet
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Create(ctx context.Context, settings *entity.ShopSettings) error
	Update(ctx context.Context, settings *entity.ShopSettings) error
}
