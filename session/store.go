package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis transport failure so callers can map
// it to their own service-level error without inspecting go-redis internals.
var ErrRedisUnavailable = errors.New("redis unavailable")

// pushCapScript appends the new token, measures the list, and pops the
// oldest token when the cap is exceeded — in one atomic step. Returns the
// settled list length, plus the evicted token when an eviction happened.
const pushCapScript = `
local len = redis.call("RPUSH", KEYS[1], ARGV[1])
if len > tonumber(ARGV[2]) then
  local evicted = redis.call("LPOP", KEYS[1])
  return {len - 1, evicted}
end
return {len}
`

var pushCapLua = redis.NewScript(pushCapScript)

// Store is the Redis adapter for the token cache and the per-user FIFO
// session lists.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redis redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  redis,
		prefix: prefix,
	}
}

func (s *Store) tokenKey(token string) string {
	return s.prefix + ":token:" + token
}

func (s *Store) listKey(userID string) string {
	return s.prefix + ":sessions:" + userID
}

// SaveEntry writes the identity snapshot for a token with the given TTL.
//
//	Performance: 1 Redis SET.
func (s *Store) SaveEntry(ctx context.Context, e *Entry, ttl time.Duration) error {
	data, err := Encode(e)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.tokenKey(e.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// GetEntry fetches and decodes the snapshot for a token. Returns redis.Nil
// when the token was never issued, was revoked, or has passively expired —
// the three cases are indistinguishable by design.
//
//	Performance: 1 Redis GET.
func (s *Store) GetEntry(ctx context.Context, token string) (*Entry, error) {
	data, err := s.redis.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	e, err := Decode(data)
	if err != nil {
		return nil, err
	}
	e.Token = token

	return e, nil
}

// DeleteEntry removes a token's cache entry. Deleting an absent key is a
// no-op, which makes revocation idempotent.
func (s *Store) DeleteEntry(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// PushSession appends token to the tail of the user's session list and, when
// the list exceeds max, pops the head in the same atomic script. Returns the
// settled list length and the evicted token ("" when nothing was evicted).
//
// The script's atomicity is the per-user critical section: two concurrent
// logins for one user cannot both observe the same overflow, so exactly one
// eviction happens per overflow and the settled length never exceeds max.
//
//	Performance: 1 Lua EVALSHA.
func (s *Store) PushSession(ctx context.Context, userID, token string, max int) (int, string, error) {
	result, err := pushCapLua.Run(ctx, s.redis, []string{s.listKey(userID)}, token, max).Result()
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	parts, ok := result.([]interface{})
	if !ok || len(parts) == 0 {
		return 0, "", fmt.Errorf("%w: invalid push script response", ErrRedisUnavailable)
	}

	length, ok := parts[0].(int64)
	if !ok {
		return 0, "", fmt.Errorf("%w: invalid push script length", ErrRedisUnavailable)
	}

	if len(parts) < 2 {
		return int(length), "", nil
	}

	switch v := parts[1].(type) {
	case string:
		return int(length), v, nil
	case []byte:
		return int(length), string(v), nil
	default:
		return 0, "", fmt.Errorf("%w: invalid push script eviction payload", ErrRedisUnavailable)
	}
}

// RemoveSession removes a token from the user's list by value, wherever it
// sits. Removing an absent token is a no-op.
func (s *Store) RemoveSession(ctx context.Context, userID, token string) error {
	if err := s.redis.LRem(ctx, s.listKey(userID), 0, token).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SessionTokens returns the user's live tokens in issuance order, oldest
// first.
func (s *Store) SessionTokens(ctx context.Context, userID string) ([]string, error) {
	tokens, err := s.redis.LRange(ctx, s.listKey(userID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return tokens, nil
}

// SessionCount returns the current length of the user's session list.
func (s *Store) SessionCount(ctx context.Context, userID string) (int, error) {
	count, err := s.redis.LLen(ctx, s.listKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return int(count), nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
