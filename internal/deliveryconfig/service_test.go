package deliveryconfig

import (
	"context"
	"testing"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupConfigTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS delivery_tiers (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  min_days INTEGER NOT NULL,
  max_days INTEGER NOT NULL,
  color TEXT NOT NULL DEFAULT 'gray',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS location_rules (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  value TEXT NOT NULL,
  tier_id INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS delivery_settings (
  id INTEGER PRIMARY KEY,
  enable_weekend_adjustment INTEGER NOT NULL DEFAULT 1,
  weekend_extra_days INTEGER NOT NULL DEFAULT 2,
  enable_holiday_adjustment INTEGER NOT NULL DEFAULT 1,
  holiday_extra_days INTEGER NOT NULL DEFAULT 1,
  default_tier_id INTEGER NOT NULL,
  restrict_to_state TEXT NOT NULL,
  free_delivery_threshold INTEGER NOT NULL DEFAULT 0,
  enable_express_delivery INTEGER NOT NULL DEFAULT 0,
  express_delivery_fee INTEGER NOT NULL DEFAULT 0,
  enable_cod INTEGER NOT NULL DEFAULT 0,
  cod_fee INTEGER NOT NULL DEFAULT 0,
  max_cod_amount INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS holidays (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  date DATETIME NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func newConfigService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db := setupConfigTestDB(t)

	tiers := []models.DeliveryTier{
		{ID: 1, Name: "Express", MinDays: 2, MaxDays: 3, Color: "green", IsActive: true},
		{ID: 2, Name: "Standard", MinDays: 3, MaxDays: 4, Color: "blue", IsActive: true},
		{ID: 3, Name: "Economy", MinDays: 4, MaxDays: 6, Color: "gray", IsActive: true},
	}
	require.NoError(t, db.Create(&tiers).Error)

	settings := models.DeliverySetting{
		ID:                      models.DeliverySettingID,
		EnableWeekendAdjustment: true,
		WeekendExtraDays:        2,
		DefaultTierID:           3,
		RestrictToState:         "West Bengal",
	}
	require.NoError(t, db.Create(&settings).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func TestCreateTier(t *testing.T) {
	svc, db := newConfigService(t)

	active := false
	tier, err := svc.CreateTier(context.Background(), CreateTierRequest{
		ID:       4,
		Name:     " Remote ",
		MinDays:  6,
		MaxDays:  9,
		IsActive: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, "Remote", tier.Name)
	assert.Equal(t, "gray", tier.Color)
	assert.False(t, tier.IsActive)

	// The stored row must carry is_active=false too, not just the returned struct.
	var stored models.DeliveryTier
	require.NoError(t, db.First(&stored, 4).Error)
	assert.False(t, stored.IsActive)

	tiers, err := svc.ListTiers(context.Background())
	require.NoError(t, err)
	assert.Len(t, tiers, 4)
}

func TestCreateInactiveRuleAndHoliday(t *testing.T) {
	svc, db := newConfigService(t)
	inactive := false

	rule, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Type:     models.RuleTypeDistrict,
		Value:    "nadia",
		TierID:   2,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, rule.IsActive)

	var storedRule models.LocationRule
	require.NoError(t, db.First(&storedRule, "id = ?", rule.ID).Error)
	assert.False(t, storedRule.IsActive)

	holiday, err := svc.CreateHoliday(context.Background(), CreateHolidayRequest{
		Name:     "Bhai Phonta",
		Date:     "2025-10-23",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, holiday.IsActive)

	var storedHoliday models.Holiday
	require.NoError(t, db.First(&storedHoliday, "id = ?", holiday.ID).Error)
	assert.False(t, storedHoliday.IsActive)
}

func TestCreateTierRejectsDuplicateID(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.CreateTier(context.Background(), CreateTierRequest{
		ID: 1, Name: "Dup", MinDays: 1, MaxDays: 2,
	})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateTierRejectsInvertedRange(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.CreateTier(context.Background(), CreateTierRequest{
		ID: 4, Name: "Bad", MinDays: 5, MaxDays: 3,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateTierPartial(t *testing.T) {
	svc, _ := newConfigService(t)

	name := "Express Plus"
	maxDays := 4
	tier, err := svc.UpdateTier(context.Background(), 1, UpdateTierRequest{
		Name:    &name,
		MaxDays: &maxDays,
	})
	require.NoError(t, err)
	assert.Equal(t, "Express Plus", tier.Name)
	assert.Equal(t, 2, tier.MinDays)
	assert.Equal(t, 4, tier.MaxDays)
}

func TestUpdateTierRejectsInvertedRange(t *testing.T) {
	svc, _ := newConfigService(t)

	minDays := 10
	_, err := svc.UpdateTier(context.Background(), 1, UpdateTierRequest{MinDays: &minDays})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateTierNotFound(t *testing.T) {
	svc, _ := newConfigService(t)

	name := "Ghost"
	_, err := svc.UpdateTier(context.Background(), 42, UpdateTierRequest{Name: &name})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeactivateLastActiveTierRejected(t *testing.T) {
	svc, db := newConfigService(t)

	require.NoError(t, db.Model(&models.DeliveryTier{}).
		Where("id IN ?", []int{2, 3}).
		Update("is_active", false).Error)

	// Tier 1 is not the default, but it is the only tier left active.
	inactive := false
	_, err := svc.UpdateTier(context.Background(), 1, UpdateTierRequest{IsActive: &inactive})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestDeactivateDefaultTierRejected(t *testing.T) {
	svc, _ := newConfigService(t)

	// Tiers 1 and 2 are still active, but 3 is the configured default.
	inactive := false
	_, err := svc.UpdateTier(context.Background(), 3, UpdateTierRequest{IsActive: &inactive})
	requireCode(t, err, pkgerrors.CodeConflict)

	// A non-default active tier can still be switched off.
	tier, err := svc.UpdateTier(context.Background(), 1, UpdateTierRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, tier.IsActive)
}

func TestDeleteTier(t *testing.T) {
	svc, _ := newConfigService(t)

	require.NoError(t, svc.DeleteTier(context.Background(), 2))

	tiers, err := svc.ListTiers(context.Background())
	require.NoError(t, err)
	assert.Len(t, tiers, 2)
}

func TestDeleteTierGuards(t *testing.T) {
	svc, db := newConfigService(t)

	// The configured default tier cannot be removed.
	requireCode(t, svc.DeleteTier(context.Background(), 3), pkgerrors.CodeConflict)

	// A tier referenced by rules cannot be removed.
	rule := models.LocationRule{ID: uuid.New(), Type: models.RuleTypeDistrict, Value: "howrah", TierID: 1, IsActive: true}
	require.NoError(t, db.Create(&rule).Error)
	requireCode(t, svc.DeleteTier(context.Background(), 1), pkgerrors.CodeConflict)

	// The last remaining active tier cannot be removed.
	require.NoError(t, db.Delete(&models.LocationRule{}, "id = ?", rule.ID).Error)
	require.NoError(t, db.Model(&models.DeliveryTier{}).
		Where("id IN ?", []int{2, 3}).
		Update("is_active", false).Error)
	require.NoError(t, db.Model(&models.DeliverySetting{}).
		Where("id = ?", models.DeliverySettingID).
		Update("default_tier_id", 2).Error)
	requireCode(t, svc.DeleteTier(context.Background(), 1), pkgerrors.CodeConflict)

	requireCode(t, svc.DeleteTier(context.Background(), 42), pkgerrors.CodeNotFound)
}

func TestCreateRuleNormalizesValue(t *testing.T) {
	svc, _ := newConfigService(t)

	rule, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Type:   models.RuleTypeDistrict,
		Value:  "  Howrah ",
		TierID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "howrah", rule.Value)
	assert.True(t, rule.IsActive)
	assert.NotEqual(t, uuid.Nil, rule.ID)
}

func TestCreateRuleRequiresExistingTier(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Type:   models.RuleTypeCity,
		Value:  "durgapur",
		TierID: 42,
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateRule(t *testing.T) {
	svc, _ := newConfigService(t)

	rule, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Type:   models.RuleTypeCity,
		Value:  "durgapur",
		TierID: 2,
	})
	require.NoError(t, err)

	value := "ASANSOL"
	tierID := 1
	updated, err := svc.UpdateRule(context.Background(), rule.ID, UpdateRuleRequest{
		Value:  &value,
		TierID: &tierID,
	})
	require.NoError(t, err)
	assert.Equal(t, "asansol", updated.Value)
	assert.Equal(t, 1, updated.TierID)
}

func TestDeleteRule(t *testing.T) {
	svc, _ := newConfigService(t)

	rule, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Type:   models.RuleTypeCity,
		Value:  "durgapur",
		TierID: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(context.Background(), rule.ID))
	requireCode(t, svc.DeleteRule(context.Background(), rule.ID), pkgerrors.CodeNotFound)
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newConfigService(t)

	settings, err := svc.UpdateSettings(context.Background(), UpdateSettingsRequest{
		EnableWeekendAdjustment: false,
		WeekendExtraDays:        3,
		EnableHolidayAdjustment: true,
		HolidayExtraDays:        2,
		DefaultTierID:           2,
		RestrictToState:         "West Bengal",
		EnableExpressDelivery:   true,
		ExpressDeliveryFee:      15,
	})
	require.NoError(t, err)
	assert.False(t, settings.EnableWeekendAdjustment)
	assert.Equal(t, 2, settings.DefaultTierID)
	assert.True(t, settings.EnableExpressDelivery)

	reloaded, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.DefaultTierID)
	assert.Equal(t, 3, reloaded.WeekendExtraDays)
}

func TestUpdateSettingsRejectsOutOfRangeExtraDays(t *testing.T) {
	svc, _ := newConfigService(t)

	// Enforced in the service, not just at the request-decoding boundary.
	for _, req := range []UpdateSettingsRequest{
		{WeekendExtraDays: 8, DefaultTierID: 3, RestrictToState: "West Bengal"},
		{WeekendExtraDays: -1, DefaultTierID: 3, RestrictToState: "West Bengal"},
		{HolidayExtraDays: 8, DefaultTierID: 3, RestrictToState: "West Bengal"},
	} {
		_, err := svc.UpdateSettings(context.Background(), req)
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestUpdateSettingsRequiresExistingDefaultTier(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.UpdateSettings(context.Background(), UpdateSettingsRequest{
		DefaultTierID:   42,
		RestrictToState: "West Bengal",
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestHolidayLifecycle(t *testing.T) {
	svc, _ := newConfigService(t)

	created, err := svc.CreateHoliday(context.Background(), CreateHolidayRequest{
		Name: "Durga Puja",
		Date: "2025-09-28",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-28", created.Date)
	assert.True(t, created.IsActive)

	name := "Durga Puja Week"
	inactive := false
	updated, err := svc.UpdateHoliday(context.Background(), created.ID, UpdateHolidayRequest{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Durga Puja Week", updated.Name)
	assert.False(t, updated.IsActive)

	holidays, err := svc.ListHolidays(context.Background())
	require.NoError(t, err)
	require.Len(t, holidays, 1)

	require.NoError(t, svc.DeleteHoliday(context.Background(), created.ID))
	requireCode(t, svc.DeleteHoliday(context.Background(), created.ID), pkgerrors.CodeNotFound)
}

func TestCreateHolidayRejectsBadDate(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.CreateHoliday(context.Background(), CreateHolidayRequest{
		Name: "Bad",
		Date: "28-09-2025",
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}
