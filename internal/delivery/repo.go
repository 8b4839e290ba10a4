package delivery

import (
	"context"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads the delivery configuration the estimator reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a read-side repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot loads tiers, active rules, and the settings singleton in one pass.
// Rules come back ordered by creation so classifier precedence is stable.
func (r *Repository) Snapshot(ctx context.Context) (ConfigSnapshot, error) {
	var snapshot ConfigSnapshot

	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&snapshot.Tiers).Error; err != nil {
		return ConfigSnapshot{}, err
	}

	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&snapshot.Rules).Error; err != nil {
		return ConfigSnapshot{}, err
	}

	if err := r.db.WithContext(ctx).
		First(&snapshot.Settings, models.DeliverySettingID).Error; err != nil {
		return ConfigSnapshot{}, err
	}

	return snapshot, nil
}
