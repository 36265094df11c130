// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceModel represents the dashboard_preferences table in the database.
// One row holds one serialized preference of one owner.
type PreferenceModel struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"column:pref_key;type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PreferenceModel.
func (PreferenceModel) TableName() string {
	return "dashboard_preferences"
}
