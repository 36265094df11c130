package filters

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// GetRequestParamsUseCase derives upstream request parameters from an
// owner's effective filters without writing to storage.
type GetRequestParamsUseCase struct {
	sessions *Sessions
}

// NewGetRequestParamsUseCase creates a new GetRequestParamsUseCase instance.
func NewGetRequestParamsUseCase(sessions *Sessions) *GetRequestParamsUseCase {
	return &GetRequestParamsUseCase{sessions: sessions}
}

// Execute returns the effective snapshot and its request parameters.
func (uc *GetRequestParamsUseCase) Execute(ctx context.Context, userID uuid.UUID) (entity.FilterSnapshot, entity.RequestParams, error) {
	var (
		snapshot entity.FilterSnapshot
		params   entity.RequestParams
	)
	err := uc.sessions.With(ctx, userID, func(store *Store) error {
		snapshot = store.State()
		params = store.RequestParams()
		return nil
	})
	return snapshot, params, err
}
