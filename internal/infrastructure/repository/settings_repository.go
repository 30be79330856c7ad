package repository

import (
	"context"
	"errors"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the oldest settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.ShopSettings, error) {
	var settings entity.ShopSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Create creates the settings row
func (r *settingsRepository) Create(ctx context.Context, settings *entity.ShopSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update updates the settings row
func (r *settingsRepository) Update(ctx context.Context, settings *entity.ShopSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
