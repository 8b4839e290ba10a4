package deliveryconfig

import (
	"context"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the write side of the delivery configuration.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a configuration repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListTiers returns every tier, active or not, ordered by id.
func (r *Repository) ListTiers(ctx context.Context) ([]models.DeliveryTier, error) {
	var rows []models.DeliveryTier
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTier loads a single tier by id.
func (r *Repository) FindTier(ctx context.Context, id int) (*models.DeliveryTier, error) {
	var tier models.DeliveryTier
	if err := r.db.WithContext(ctx).First(&tier, id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// CreateTier inserts a new tier row.
func (r *Repository) CreateTier(ctx context.Context, tier *models.DeliveryTier) (*models.DeliveryTier, error) {
	if err := r.db.WithContext(ctx).Create(tier).Error; err != nil {
		return nil, err
	}
	return tier, nil
}

// UpdateTier persists a full tier row.
func (r *Repository) UpdateTier(ctx context.Context, tier *models.DeliveryTier) error {
	return r.db.WithContext(ctx).Save(tier).Error
}

// DeleteTier removes a tier row.
func (r *Repository) DeleteTier(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.DeliveryTier{}, id).Error
}

// CountOtherActiveTiers counts active tiers excluding the given id.
func (r *Repository) CountOtherActiveTiers(ctx context.Context, excludeID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DeliveryTier{}).
		Where("is_active = ? AND id <> ?", true, excludeID).
		Count(&count).Error
	return count, err
}

// CountRulesForTier counts rules referencing a tier.
func (r *Repository) CountRulesForTier(ctx context.Context, tierID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LocationRule{}).
		Where("tier_id = ?", tierID).
		Count(&count).Error
	return count, err
}

// ListRules returns every rule in stored order, the same order the
// classifier walks them in.
func (r *Repository) ListRules(ctx context.Context) ([]models.LocationRule, error) {
	var rows []models.LocationRule
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindRule loads a single rule by id.
func (r *Repository) FindRule(ctx context.Context, id uuid.UUID) (*models.LocationRule, error) {
	var rule models.LocationRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateRule inserts a new rule row.
func (r *Repository) CreateRule(ctx context.Context, rule *models.LocationRule) (*models.LocationRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateRule persists a full rule row.
func (r *Repository) UpdateRule(ctx context.Context, rule *models.LocationRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// DeleteRule removes a rule row.
func (r *Repository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LocationRule{}, "id = ?", id).Error
}

// GetSettings loads the settings singleton.
func (r *Repository) GetSettings(ctx context.Context) (*models.DeliverySetting, error) {
	var settings models.DeliverySetting
	if err := r.db.WithContext(ctx).First(&settings, models.DeliverySettingID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings persists the settings singleton in a single write.
func (r *Repository) SaveSettings(ctx context.Context, settings *models.DeliverySetting) error {
	settings.ID = models.DeliverySettingID
	return r.db.WithContext(ctx).Save(settings).Error
}

// ListHolidays returns the holiday registry ordered by date.
func (r *Repository) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	var rows []models.Holiday
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindHoliday loads a single holiday by id.
func (r *Repository) FindHoliday(ctx context.Context, id uuid.UUID) (*models.Holiday, error) {
	var holiday models.Holiday
	if err := r.db.WithContext(ctx).First(&holiday, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &holiday, nil
}

// CreateHoliday inserts a new holiday row.
func (r *Repository) CreateHoliday(ctx context.Context, holiday *models.Holiday) (*models.Holiday, error) {
	if err := r.db.WithContext(ctx).Create(holiday).Error; err != nil {
		return nil, err
	}
	return holiday, nil
}

// UpdateHoliday persists a full holiday row.
func (r *Repository) UpdateHoliday(ctx context.Context, holiday *models.Holiday) error {
	return r.db.WithContext(ctx).Save(holiday).Error
}

// DeleteHoliday removes a holiday row.
func (r *Repository) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Holiday{}, "id = ?", id).Error
}
