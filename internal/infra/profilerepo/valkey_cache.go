package profilerepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
)

// CachedRepository puts a Valkey read-through cache in front of another
// repository. Cache failures degrade to direct reads.
type CachedRepository struct {
	next   profile.Repository
	client valkey.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a Valkey cache.
func NewCachedRepository(next profile.Repository, client valkey.Client, prefix string, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	if prefix == "" {
		prefix = "profile"
	}
	return &CachedRepository{
		next:   next,
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "profilerepo.cache"),
	}
}

func (r *CachedRepository) Get(ctx context.Context, id string) (profile.UserProfile, bool, error) {
	if p, ok := r.lookup(ctx, id); ok {
		return p, true, nil
	}
	p, ok, err := r.next.Get(ctx, id)
	if err != nil || !ok {
		return p, ok, err
	}
	if err := r.store(ctx, p); err != nil {
		r.logger.Warn("profile cache write failed", "user_id", id, "error", err)
	}
	return p, true, nil
}

func (r *CachedRepository) List(ctx context.Context) ([]string, error) {
	return r.next.List(ctx)
}

func (r *CachedRepository) lookup(ctx context.Context, id string) (profile.UserProfile, bool) {
	payload, err := r.client.Do(ctx, r.client.B().Get().Key(r.key(id)).Build()).ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			r.logger.Warn("profile cache read failed", "user_id", id, "error", err)
		}
		return profile.UserProfile{}, false
	}
	var p profile.UserProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		r.logger.Warn("profile cache entry malformed", "user_id", id, "error", err)
		return profile.UserProfile{}, false
	}
	return p, true
}

func (r *CachedRepository) store(ctx context.Context, p profile.UserProfile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	builder := r.client.B().Set().Key(r.key(p.ID)).Value(string(payload))
	var cmd valkey.Completed
	if r.ttl > 0 {
		ttl := r.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return r.client.Do(ctx, cmd).Error()
}

func (r *CachedRepository) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

var _ profile.Repository = (*CachedRepository)(nil)
