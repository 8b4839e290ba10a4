package models

import (
	"time"

	"github.com/google/uuid"
)

// Rule kinds understood by the classifier. Pincode rules are stored but the
// shipped matching order only consults district and city rules.
const (
	RuleTypeDistrict = "district"
	RuleTypeCity     = "city"
	RuleTypePincode  = "pincode"
)

// LocationRule maps a place name or postal prefix to a delivery tier.
// Values are lowercased at write time; matching is case-insensitive.
type LocationRule struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      string    `gorm:"column:type;type:text;not null;index:location_rules_type_idx" json:"type"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	TierID    int       `gorm:"column:tier_id;not null" json:"tier"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
