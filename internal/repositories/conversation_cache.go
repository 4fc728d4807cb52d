package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// ErrCacheMiss is returned when no listing is cached for the user.
var ErrCacheMiss = errors.New("conversation list not cached")

var errStaleListing = errors.New("conversation list version changed")

// ConversationCacheRepository caches a user's conversation listing in Redis
// next to a version counter advanced by every invalidation.
type ConversationCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached listings
}

func NewConversationCacheRepository(client *redis.Client, expiration time.Duration) *ConversationCacheRepository {
	return &ConversationCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func conversationListKey(userID int64) string {
	return fmt.Sprintf("conversations:%d", userID)
}

func conversationVersionKey(userID int64) string {
	return fmt.Sprintf("conversations:%d:version", userID)
}

// Get returns the cached listing and the current version. On ErrCacheMiss
// the version is still reported for a following Set.
func (r *ConversationCacheRepository) Get(ctx context.Context, userID int64) ([]models.ConversationSummary, int64, error) {
	key := conversationListKey(userID)

	vals, err := r.client.MGet(ctx, key, conversationVersionKey(userID)).Result()
	if err != nil {
		logger.Log.Debugw("cache get", "key", key, "error", err)
		return nil, 0, err
	}

	version, err := parseVersion(vals[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		logger.Log.Debugw("cache get", "key", key, "version", version, "error", ErrCacheMiss)
		return nil, version, ErrCacheMiss
	}

	var convs []models.ConversationSummary
	if err := json.Unmarshal([]byte(raw), &convs); err != nil {
		logger.Log.Warnw("cache entry corrupt", "key", key, "error", err)
		return nil, version, ErrCacheMiss
	}

	logger.Log.Debugw("cache get", "key", key, "version", version, "result", len(convs))
	return convs, version, nil
}

// Set stores the listing with the repository expiration, unless the listing
// was invalidated since version was read. A skipped write is not an error.
func (r *ConversationCacheRepository) Set(ctx context.Context, userID, version int64, convs []models.ConversationSummary) error {
	key := conversationListKey(userID)
	versionKey := conversationVersionKey(userID)

	payload, err := json.Marshal(convs)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.exp)
			return nil
		})
		return err
	}, versionKey)

	if errors.Is(err, errStaleListing) || errors.Is(err, redis.TxFailedErr) {
		logger.Log.Debugw("cache set skipped", "key", key, "version", version)
		return nil
	}

	logger.Log.Debugw("cache set", "key", key, "version", version, "result", len(convs), "error", err)
	return err
}

// Invalidate drops the cached listing and advances the version.
func (r *ConversationCacheRepository) Invalidate(ctx context.Context, userID int64) error {
	key := conversationListKey(userID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, conversationVersionKey(userID))
		pipe.Del(ctx, key)
		return nil
	})

	logger.Log.Debugw("cache invalidate", "key", key, "error", err)
	return err
}

func parseVersion(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
