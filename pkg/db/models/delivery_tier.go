package models

import "time"

// DeliveryTier is a named service level with a transit-day range.
// Inactive tiers stay addressable by historical rules but are excluded from lookup.
type DeliveryTier struct {
	ID        int       `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	MinDays   int       `gorm:"column:min_days;not null" json:"min_days"`
	MaxDays   int       `gorm:"column:max_days;not null" json:"max_days"`
	Color     string    `gorm:"column:color;type:text;not null;default:gray" json:"color"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
