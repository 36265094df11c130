// Package persistence implements the preference and staged edit stores.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/integration/persistence/model"
)

// sqlPreferenceStore implements the adapter.PreferenceStore interface on a
// SQL database through GORM.
type sqlPreferenceStore struct {
	db *gorm.DB
}

// NewSQLPreferenceStore creates a new SQL preference store instance.
func NewSQLPreferenceStore(db *gorm.DB) adapter.PreferenceStore {
	return &sqlPreferenceStore{
		db: db,
	}
}

// Get retrieves a preference by owner and key.
func (s *sqlPreferenceStore) Get(ctx context.Context, ownerID uuid.UUID, key string) (string, bool, error) {
	var pref model.PreferenceModel
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND pref_key = ?", ownerID, key).
		First(&pref)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return pref.Value, true, nil
}

// Set inserts or replaces a preference.
func (s *sqlPreferenceStore) Set(ctx context.Context, ownerID uuid.UUID, key, value string) error {
	pref := &model.PreferenceModel{
		OwnerID:   ownerID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "pref_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(pref)
	return result.Error
}

// Ping checks the database connection.
func (s *sqlPreferenceStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
