package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tmoreau/boutique-backend/pkg/logger"
)

// sessionTTL keeps an untouched cart alive for a week, mirroring the
// durable client-side storage of the storefront.
const sessionTTL = 7 * 24 * time.Hour

// Store persists carts between requests, keyed by an opaque session ID.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// NewSessionID issues a fresh opaque cart session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by redis. Each cart is stored as a
// JSON blob with a sliding 7-day TTL.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load fetches the session's cart. An unknown session yields a fresh empty
// cart rather than an error: a session starts with an empty cart.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return New(), nil
	}
	if err != nil {
		logger.Error("Failed to load cart from redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupted blob is not worth failing checkout over; start over.
		logger.Warn("Discarding unreadable cart blob", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return New(), nil
	}
	c.normalize()
	return &c, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, sessionTTL).Err(); err != nil {
		logger.Error("Failed to save cart to redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
