package deliveryconfig

import "github.com/google/uuid"

// CreateTierRequest captures a new service level from the admin console.
type CreateTierRequest struct {
	ID       int    `json:"id" validate:"required,min=1"`
	Name     string `json:"name" validate:"required"`
	MinDays  int    `json:"min_days" validate:"required,min=1"`
	MaxDays  int    `json:"max_days" validate:"required,min=1"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active"`
}

// UpdateTierRequest carries a partial tier edit; nil fields stay untouched.
type UpdateTierRequest struct {
	Name     *string `json:"name"`
	MinDays  *int    `json:"min_days" validate:"omitempty,min=1"`
	MaxDays  *int    `json:"max_days" validate:"omitempty,min=1"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"is_active"`
}

// CreateRuleRequest adds a location-to-tier mapping.
type CreateRuleRequest struct {
	Type     string `json:"type" validate:"required,oneof=district city pincode"`
	Value    string `json:"value" validate:"required"`
	TierID   int    `json:"tier" validate:"required,min=1"`
	IsActive *bool  `json:"is_active"`
}

// UpdateRuleRequest carries a partial rule edit; nil fields stay untouched.
type UpdateRuleRequest struct {
	Type     *string `json:"type" validate:"omitempty,oneof=district city pincode"`
	Value    *string `json:"value"`
	TierID   *int    `json:"tier" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// UpdateSettingsRequest replaces the settings singleton in one write.
type UpdateSettingsRequest struct {
	EnableWeekendAdjustment bool   `json:"enable_weekend_adjustment"`
	WeekendExtraDays        int    `json:"weekend_extra_days" validate:"min=0,max=7"`
	EnableHolidayAdjustment bool   `json:"enable_holiday_adjustment"`
	HolidayExtraDays        int    `json:"holiday_extra_days" validate:"min=0,max=7"`
	DefaultTierID           int    `json:"default_tier" validate:"required,min=1"`
	RestrictToState         string `json:"restrict_to_state" validate:"required"`
	FreeDeliveryThreshold   int    `json:"free_delivery_threshold" validate:"min=0"`
	EnableExpressDelivery   bool   `json:"enable_express_delivery"`
	ExpressDeliveryFee      int    `json:"express_delivery_fee" validate:"min=0"`
	EnableCOD               bool   `json:"enable_cod"`
	CODFee                  int    `json:"cod_fee" validate:"min=0"`
	MaxCODAmount            int    `json:"max_cod_amount" validate:"min=0"`
}

// CreateHolidayRequest adds a calendar entry to the holiday registry.
type CreateHolidayRequest struct {
	Name     string `json:"name" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	IsActive *bool  `json:"is_active"`
}

// UpdateHolidayRequest carries a partial holiday edit; nil fields stay untouched.
type UpdateHolidayRequest struct {
	Name     *string `json:"name"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IsActive *bool   `json:"is_active"`
}

// HolidayDTO renders a holiday with its date in plain YYYY-MM-DD form.
type HolidayDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Date     string    `json:"date"`
	IsActive bool      `json:"is_active"`
}
