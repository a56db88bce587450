package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/stocktech/marketplace/cmd/redis"
	"github.com/stocktech/marketplace/model"
)

// Repository caches identities resolved from the account service, keyed by
// session token. All methods are no-ops when redis is not configured so the
// resolver simply falls through to the upstream call.
type Repository interface {
	GetIdentity(ctx context.Context, token string) (*model.Identity, error)
	SetIdentity(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error
	DeleteIdentity(ctx context.Context, token string) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func identityKey(token string) string {
	return "identity:" + token
}

func (r *redis) GetIdentity(ctx context.Context, token string) (*model.Identity, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, identityKey(token)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *redis) SetIdentity(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return client.Set(ctx, identityKey(token), string(raw), ttl).Err()
}

func (r *redis) DeleteIdentity(ctx context.Context, token string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, identityKey(token)).Err()
}
