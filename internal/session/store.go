// Package session implements the server-side session store behind the
// access gate. A session is an opaque random token mapped in Redis onto the
// caller's client id and role. Sessions expire after 30 minutes of
// inactivity; every successful resolution refreshes the TTL. Logout deletes
// the key, which makes revocation immediate. That is why the store holds
// state server-side instead of encoding claims into the token.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/utils"
)

// IdleTTL is the idle expiry of a session. Each successful Get pushes the
// deadline forward by this much.
const IdleTTL = 30 * time.Minute

// ErrNoSession indicates the token does not resolve to a live session.
var ErrNoSession = errors.New("no session")

// Identity is what the gate resolves from a token.
type Identity struct {
	ClientID uint64
	Role     repository.Role
}

// Store persists sessions in Redis under "session:<token>" hashes.
type Store struct {
	rdb *redis.Client
}

// NewStore constructs a session store. The Redis client must be non-nil;
// unlike rate limiting or caching there is no degraded mode without
// sessions.
func NewStore(rdb *redis.Client) *Store {
	if rdb == nil {
		panic("nil redis client passed to session.NewStore")
	}
	return &Store{rdb: rdb}
}

func key(token string) string { return "session:" + token }

// Create establishes a session for the given identity and returns its
// token.
func (s *Store) Create(ctx context.Context, id Identity) (string, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	k := key(token)
	if err := s.rdb.HSet(ctx, k,
		"client_id", strconv.FormatUint(id.ClientID, 10),
		"role", string(id.Role),
	).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Expire(ctx, k, IdleTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token into an Identity and refreshes the idle TTL.
// Returns ErrNoSession for unknown or expired tokens.
func (s *Store) Get(ctx context.Context, token string) (Identity, error) {
	k := key(token)
	fields, err := s.rdb.HGetAll(ctx, k).Result()
	if err != nil {
		return Identity{}, err
	}
	if len(fields) == 0 {
		return Identity{}, ErrNoSession
	}
	clientID, err := strconv.ParseUint(fields["client_id"], 10, 64)
	if err != nil {
		return Identity{}, ErrNoSession
	}
	role := repository.Role(fields["role"])
	if role != repository.RoleAdmin && role != repository.RoleStandard {
		return Identity{}, ErrNoSession
	}
	// idle expiry: touching the session pushes the deadline forward
	_ = s.rdb.Expire(ctx, k, IdleTTL).Err()
	return Identity{ClientID: clientID, Role: role}, nil
}

// Delete removes a session. Deleting an unknown token is not an error, so
// logout stays idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, key(token)).Err()
}
