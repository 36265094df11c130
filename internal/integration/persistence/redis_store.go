package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/domain/entity"
	"github.com/automation-insights/backend/internal/integration/persistence/model"
)

const (
	preferenceKeyPrefix = "prefs"
	stagedEditKeyPrefix = "datepicker"
)

// redisPreferenceStore implements the adapter.PreferenceStore interface on Redis.
// Preferences never expire.
type redisPreferenceStore struct {
	client *redis.Client
}

// NewRedisPreferenceStore creates a new Redis preference store instance.
func NewRedisPreferenceStore(client *redis.Client) adapter.PreferenceStore {
	return &redisPreferenceStore{
		client: client,
	}
}

// Get retrieves a preference by owner and key.
func (s *redisPreferenceStore) Get(ctx context.Context, ownerID uuid.UUID, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, preferenceKey(ownerID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set replaces a preference.
func (s *redisPreferenceStore) Set(ctx context.Context, ownerID uuid.UUID, key, value string) error {
	return s.client.Set(ctx, preferenceKey(ownerID, key), value, 0).Err()
}

// Ping checks the Redis connection.
func (s *redisPreferenceStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// redisStagedEditStore implements the adapter.StagedEditStore interface on
// Redis. Staged edits expire after ttl without activity.
type redisStagedEditStore struct {
	client *redis.Client
	ttl    time.Duration
	loc    *time.Location
}

// NewRedisStagedEditStore creates a new Redis staged edit store instance.
func NewRedisStagedEditStore(client *redis.Client, ttl time.Duration, loc *time.Location) adapter.StagedEditStore {
	return &redisStagedEditStore{
		client: client,
		ttl:    ttl,
		loc:    loc,
	}
}

// Get retrieves the staged edit of an owner.
func (s *redisStagedEditStore) Get(ctx context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error) {
	return s.decode(s.client.Get(ctx, stagedEditKey(ownerID)).Bytes())
}

// Take removes and returns the staged edit of an owner with GETDEL.
func (s *redisStagedEditStore) Take(ctx context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error) {
	return s.decode(s.client.GetDel(ctx, stagedEditKey(ownerID)).Bytes())
}

func (s *redisStagedEditStore) decode(data []byte, err error) (*entity.StagedDateEdit, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var m model.StagedEditModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode staged edit: %w", err)
	}
	return m.ToEntity(s.loc), nil
}

// Save stores the staged edit of an owner and refreshes its expiry.
func (s *redisStagedEditStore) Save(ctx context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) error {
	data, err := json.Marshal(model.StagedEditFromEntity(edit))
	if err != nil {
		return fmt.Errorf("failed to encode staged edit: %w", err)
	}
	return s.client.Set(ctx, stagedEditKey(ownerID), data, s.ttl).Err()
}

// Update overwrites the staged edit of an owner with SET XX, so an edit
// removed by a close on another instance stays removed.
func (s *redisStagedEditStore) Update(ctx context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) (bool, error) {
	data, err := json.Marshal(model.StagedEditFromEntity(edit))
	if err != nil {
		return false, fmt.Errorf("failed to encode staged edit: %w", err)
	}
	return s.client.SetXX(ctx, stagedEditKey(ownerID), data, s.ttl).Result()
}

func preferenceKey(ownerID uuid.UUID, key string) string {
	return fmt.Sprintf("%s:%s:%s", preferenceKeyPrefix, ownerID, key)
}

func stagedEditKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", stagedEditKeyPrefix, ownerID)
}
