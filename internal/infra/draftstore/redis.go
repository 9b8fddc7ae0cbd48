package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentwheels/internal/domain/draft"
	"rentwheels/internal/infra"
	"rentwheels/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// RedisDraftStore keeps each draft as one JSON value plus a per-user index
// set backing list/resume. Saves rewrite the whole draft, which is what
// makes concurrent autosave and save-now safe: last write wins on one key,
// no field-level merging.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(userID, draftID uuid.UUID) string {
	return fmt.Sprintf("draft:%s:%s", userID, draftID)
}

func userIndexKey(userID uuid.UUID) string {
	return fmt.Sprintf("drafts:%s", userID)
}

// Save upserts the draft and refreshes its TTL. Idempotent: saving an
// unchanged draft twice leaves exactly one record.
func (s *RedisDraftStore) Save(ctx context.Context, d *draft.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal draft", err)
	}

	key := draftKey(d.UserID, d.ID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.ttl)
	pipe.SAdd(ctx, userIndexKey(d.UserID), d.ID.String())
	pipe.Expire(ctx, userIndexKey(d.UserID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr("failed to save draft", err)
	}

	return nil
}

func (s *RedisDraftStore) Find(ctx context.Context, userID, draftID uuid.UUID) (*draft.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(userID, draftID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("draft not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load draft", err)
	}

	var d draft.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal draft", err)
	}

	return &d, nil
}

func (s *RedisDraftStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*draft.Draft, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list draft ids", err)
	}

	drafts := make([]*draft.Draft, 0, len(ids))
	for _, idStr := range ids {
		draftID, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}

		d, err := s.Find(ctx, userID, draftID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Draft expired but its index entry lingered; clean up.
				s.client.SRem(ctx, userIndexKey(userID), idStr)
				continue
			}
			return nil, err
		}
		drafts = append(drafts, d)
	}

	return drafts, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID, draftID uuid.UUID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, draftKey(userID, draftID))
	pipe.SRem(ctx, userIndexKey(userID), draftID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr("failed to delete draft", err)
	}
	return nil
}

// Complete removes a draft that converted into a booking, so it never shows
// up as resumable again.
func (s *RedisDraftStore) Complete(ctx context.Context, userID, draftID uuid.UUID) error {
	return s.Delete(ctx, userID, draftID)
}
