package models

import "time"

// DeliverySettingID is the fixed primary key of the settings singleton row.
const DeliverySettingID = 1

// DeliverySetting is the process-wide delivery configuration. The estimator
// reads the adjustment and restriction fields; the pricing fields are stored
// for the checkout collaborator and never consulted here.
type DeliverySetting struct {
	ID int `gorm:"column:id;primaryKey" json:"-"`

	EnableWeekendAdjustment bool `gorm:"column:enable_weekend_adjustment;not null" json:"enable_weekend_adjustment"`
	WeekendExtraDays        int  `gorm:"column:weekend_extra_days;not null" json:"weekend_extra_days"`
	EnableHolidayAdjustment bool `gorm:"column:enable_holiday_adjustment;not null" json:"enable_holiday_adjustment"`
	HolidayExtraDays        int  `gorm:"column:holiday_extra_days;not null" json:"holiday_extra_days"`

	DefaultTierID   int    `gorm:"column:default_tier_id;not null" json:"default_tier"`
	RestrictToState string `gorm:"column:restrict_to_state;type:text;not null" json:"restrict_to_state"`

	FreeDeliveryThreshold int  `gorm:"column:free_delivery_threshold;not null;default:0" json:"free_delivery_threshold"`
	EnableExpressDelivery bool `gorm:"column:enable_express_delivery;not null;default:false" json:"enable_express_delivery"`
	ExpressDeliveryFee    int  `gorm:"column:express_delivery_fee;not null;default:0" json:"express_delivery_fee"`
	EnableCOD             bool `gorm:"column:enable_cod;not null;default:false" json:"enable_cod"`
	CODFee                int  `gorm:"column:cod_fee;not null;default:0" json:"cod_fee"`
	MaxCODAmount          int  `gorm:"column:max_cod_amount;not null;default:0" json:"max_cod_amount"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the singular-feeling table name for the singleton.
func (DeliverySetting) TableName() string {
	return "delivery_settings"
}
