package models

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a named calendar entry in the admin registry. The estimator
// applies the flat holiday adjustment without consulting these dates.
type Holiday struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Date      time.Time `gorm:"column:date;type:date;not null" json:"date"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
