package deliveryconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const holidayDateLayout = "2006-01-02"

type configRepository interface {
	ListTiers(ctx context.Context) ([]models.DeliveryTier, error)
	FindTier(ctx context.Context, id int) (*models.DeliveryTier, error)
	CreateTier(ctx context.Context, tier *models.DeliveryTier) (*models.DeliveryTier, error)
	UpdateTier(ctx context.Context, tier *models.DeliveryTier) error
	DeleteTier(ctx context.Context, id int) error
	CountOtherActiveTiers(ctx context.Context, excludeID int) (int64, error)
	CountRulesForTier(ctx context.Context, tierID int) (int64, error)

	ListRules(ctx context.Context) ([]models.LocationRule, error)
	FindRule(ctx context.Context, id uuid.UUID) (*models.LocationRule, error)
	CreateRule(ctx context.Context, rule *models.LocationRule) (*models.LocationRule, error)
	UpdateRule(ctx context.Context, rule *models.LocationRule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error

	GetSettings(ctx context.Context) (*models.DeliverySetting, error)
	SaveSettings(ctx context.Context, settings *models.DeliverySetting) error

	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	FindHoliday(ctx context.Context, id uuid.UUID) (*models.Holiday, error)
	CreateHoliday(ctx context.Context, holiday *models.Holiday) (*models.Holiday, error)
	UpdateHoliday(ctx context.Context, holiday *models.Holiday) error
	DeleteHoliday(ctx context.Context, id uuid.UUID) error
}

// Service exposes the admin console's delivery configuration management.
type Service interface {
	ListTiers(ctx context.Context) ([]models.DeliveryTier, error)
	CreateTier(ctx context.Context, input CreateTierRequest) (*models.DeliveryTier, error)
	UpdateTier(ctx context.Context, id int, input UpdateTierRequest) (*models.DeliveryTier, error)
	DeleteTier(ctx context.Context, id int) error

	ListRules(ctx context.Context) ([]models.LocationRule, error)
	CreateRule(ctx context.Context, input CreateRuleRequest) (*models.LocationRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, input UpdateRuleRequest) (*models.LocationRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error

	GetSettings(ctx context.Context) (*models.DeliverySetting, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsRequest) (*models.DeliverySetting, error)

	ListHolidays(ctx context.Context) ([]HolidayDTO, error)
	CreateHoliday(ctx context.Context, input CreateHolidayRequest) (*HolidayDTO, error)
	UpdateHoliday(ctx context.Context, id uuid.UUID, input UpdateHolidayRequest) (*HolidayDTO, error)
	DeleteHoliday(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo configRepository
}

// NewService builds the configuration service.
func NewService(repo configRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery config repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListTiers(ctx context.Context) ([]models.DeliveryTier, error) {
	tiers, err := s.repo.ListTiers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery tiers")
	}
	return tiers, nil
}

func (s *service) CreateTier(ctx context.Context, input CreateTierRequest) (*models.DeliveryTier, error) {
	if input.MaxDays < input.MinDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_days must be >= min_days")
	}
	if _, err := s.repo.FindTier(ctx, input.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("tier %d already exists", input.ID))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check tier id")
	}

	tier := &models.DeliveryTier{
		ID:       input.ID,
		Name:     strings.TrimSpace(input.Name),
		MinDays:  input.MinDays,
		MaxDays:  input.MaxDays,
		Color:    strings.TrimSpace(input.Color),
		IsActive: true,
	}
	if tier.Color == "" {
		tier.Color = "gray"
	}
	if input.IsActive != nil {
		tier.IsActive = *input.IsActive
	}

	created, err := s.repo.CreateTier(ctx, tier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery tier")
	}
	return created, nil
}

func (s *service) UpdateTier(ctx context.Context, id int, input UpdateTierRequest) (*models.DeliveryTier, error) {
	tier, err := s.findTier(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tier.Name = strings.TrimSpace(*input.Name)
		if tier.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
	}
	if input.MinDays != nil {
		tier.MinDays = *input.MinDays
	}
	if input.MaxDays != nil {
		tier.MaxDays = *input.MaxDays
	}
	if tier.MaxDays < tier.MinDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_days must be >= min_days")
	}
	if input.Color != nil {
		tier.Color = strings.TrimSpace(*input.Color)
	}
	if input.IsActive != nil {
		if tier.IsActive && !*input.IsActive {
			settings, err := s.repo.GetSettings(ctx)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery settings")
			}
			// The estimator falls back to the default tier, so it must stay usable.
			if settings.DefaultTierID == id {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "cannot deactivate the default tier")
			}
			if err := s.requireOtherActiveTier(ctx, id); err != nil {
				return nil, err
			}
		}
		tier.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateTier(ctx, tier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery tier")
	}
	return tier, nil
}

func (s *service) DeleteTier(ctx context.Context, id int) error {
	tier, err := s.findTier(ctx, id)
	if err != nil {
		return err
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery settings")
	}
	if settings.DefaultTierID == id {
		return pkgerrors.New(pkgerrors.CodeConflict, "cannot delete the default tier")
	}

	refs, err := s.repo.CountRulesForTier(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rules for tier")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "tier is referenced by location rules").
			WithDetails(map[string]any{"rule_count": refs})
	}

	if tier.IsActive {
		if err := s.requireOtherActiveTier(ctx, id); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteTier(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery tier")
	}
	return nil
}

func (s *service) ListRules(ctx context.Context) ([]models.LocationRule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list location rules")
	}
	return rules, nil
}

func (s *service) CreateRule(ctx context.Context, input CreateRuleRequest) (*models.LocationRule, error) {
	value := normalizeRuleValue(input.Value)
	if value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must not be empty")
	}
	if _, err := s.findTier(ctx, input.TierID); err != nil {
		return nil, err
	}

	rule := &models.LocationRule{
		ID:       uuid.New(),
		Type:     input.Type,
		Value:    value,
		TierID:   input.TierID,
		IsActive: true,
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	created, err := s.repo.CreateRule(ctx, rule)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location rule")
	}
	return created, nil
}

func (s *service) UpdateRule(ctx context.Context, id uuid.UUID, input UpdateRuleRequest) (*models.LocationRule, error) {
	rule, err := s.repo.FindRule(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location rule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location rule")
	}

	if input.Type != nil {
		rule.Type = *input.Type
	}
	if input.Value != nil {
		value := normalizeRuleValue(*input.Value)
		if value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must not be empty")
		}
		rule.Value = value
	}
	if input.TierID != nil {
		if _, err := s.findTier(ctx, *input.TierID); err != nil {
			return nil, err
		}
		rule.TierID = *input.TierID
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateRule(ctx, rule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location rule")
	}
	return rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindRule(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location rule not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location rule")
	}
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location rule")
	}
	return nil
}

func (s *service) GetSettings(ctx context.Context) (*models.DeliverySetting, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery settings")
	}
	return settings, nil
}

const maxExtraDays = 7

func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsRequest) (*models.DeliverySetting, error) {
	if input.WeekendExtraDays < 0 || input.WeekendExtraDays > maxExtraDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("weekend_extra_days must be between 0 and %d", maxExtraDays))
	}
	if input.HolidayExtraDays < 0 || input.HolidayExtraDays > maxExtraDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("holiday_extra_days must be between 0 and %d", maxExtraDays))
	}
	if _, err := s.findTier(ctx, input.DefaultTierID); err != nil {
		return nil, err
	}

	settings := &models.DeliverySetting{
		ID:                      models.DeliverySettingID,
		EnableWeekendAdjustment: input.EnableWeekendAdjustment,
		WeekendExtraDays:        input.WeekendExtraDays,
		EnableHolidayAdjustment: input.EnableHolidayAdjustment,
		HolidayExtraDays:        input.HolidayExtraDays,
		DefaultTierID:           input.DefaultTierID,
		RestrictToState:         strings.TrimSpace(input.RestrictToState),
		FreeDeliveryThreshold:   input.FreeDeliveryThreshold,
		EnableExpressDelivery:   input.EnableExpressDelivery,
		ExpressDeliveryFee:      input.ExpressDeliveryFee,
		EnableCOD:               input.EnableCOD,
		CODFee:                  input.CODFee,
		MaxCODAmount:            input.MaxCODAmount,
	}
	if settings.RestrictToState == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restrict_to_state must not be empty")
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save delivery settings")
	}
	return settings, nil
}

func (s *service) ListHolidays(ctx context.Context) ([]HolidayDTO, error) {
	rows, err := s.repo.ListHolidays(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list holidays")
	}
	dtos := make([]HolidayDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toHolidayDTO(row))
	}
	return dtos, nil
}

func (s *service) CreateHoliday(ctx context.Context, input CreateHolidayRequest) (*HolidayDTO, error) {
	date, err := time.Parse(holidayDateLayout, input.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be in YYYY-MM-DD form")
	}

	holiday := &models.Holiday{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		Date:     date,
		IsActive: true,
	}
	if holiday.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
	}
	if input.IsActive != nil {
		holiday.IsActive = *input.IsActive
	}

	created, err := s.repo.CreateHoliday(ctx, holiday)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create holiday")
	}
	dto := toHolidayDTO(*created)
	return &dto, nil
}

func (s *service) UpdateHoliday(ctx context.Context, id uuid.UUID, input UpdateHolidayRequest) (*HolidayDTO, error) {
	holiday, err := s.repo.FindHoliday(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "holiday not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load holiday")
	}

	if input.Name != nil {
		holiday.Name = strings.TrimSpace(*input.Name)
		if holiday.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
	}
	if input.Date != nil {
		date, err := time.Parse(holidayDateLayout, *input.Date)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be in YYYY-MM-DD form")
		}
		holiday.Date = date
	}
	if input.IsActive != nil {
		holiday.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateHoliday(ctx, holiday); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update holiday")
	}
	dto := toHolidayDTO(*holiday)
	return &dto, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindHoliday(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "holiday not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load holiday")
	}
	if err := s.repo.DeleteHoliday(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete holiday")
	}
	return nil
}

func (s *service) findTier(ctx context.Context, id int) (*models.DeliveryTier, error) {
	tier, err := s.repo.FindTier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("tier %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery tier")
	}
	return tier, nil
}

// requireOtherActiveTier blocks removing the last active tier. The estimator
// always needs at least one tier it can resolve to.
func (s *service) requireOtherActiveTier(ctx context.Context, excludeID int) error {
	count, err := s.repo.CountOtherActiveTiers(ctx, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active tiers")
	}
	if count == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "at least one active tier is required")
	}
	return nil
}

func normalizeRuleValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func toHolidayDTO(h models.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:       h.ID,
		Name:     h.Name,
		Date:     h.Date.Format(holidayDateLayout),
		IsActive: h.IsActive,
	}
}
