// Package creds persists the session token and user record across client
// restarts. Storage is tiered: a sealed (encrypted-at-rest) file is tried
// first, then a plain file, then process memory. Backend failures are
// swallowed: losing the credential store must never break an auth flow,
// at worst it costs the user an extra login prompt.
package creds

import (
	"context"
	"encoding/json"

	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/logging"
)

// Storage keys. The only persistent surface this subsystem introduces.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// Store persists the bearer token and the user profile. Absent entries
// yield zero values, never errors. Implementations must be idempotent:
// removing a missing entry succeeds.
type Store interface {
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	RemoveToken(ctx context.Context) error

	SaveUser(ctx context.Context, user *models.User) error
	User(ctx context.Context) (*models.User, error)
	RemoveUser(ctx context.Context) error
}

// backend is a minimal key-value interface implemented by each storage tier.
// get returns (nil, nil) for a missing key.
type backend interface {
	set(ctx context.Context, key string, value []byte) error
	get(ctx context.Context, key string) ([]byte, error)
	delete(ctx context.Context, key string) error
}

// Tiered is the Store used in production. Writes go to the first tier that
// accepts them; reads return the first tier's answer that does not fail;
// removals clear every tier. All backend errors are logged and swallowed.
type Tiered struct {
	tiers []backend
	log   logging.Logger
}

// NewTiered builds a Store over the given tiers, ordered from most to least
// preferred. At least one tier is required; NewDefault wires the standard
// sealed-file/plain-file/memory stack.
func NewTiered(log logging.Logger, tiers ...backend) *Tiered {
	if log == nil {
		log = logging.Nop()
	}
	return &Tiered{tiers: tiers, log: log}
}

// NewDefault assembles the standard tier stack rooted at dir.
func NewDefault(dir string, log logging.Logger) *Tiered {
	return NewTiered(log,
		newSealedFileBackend(dir, machineSecret()),
		newFileBackend(dir),
		newMemoryBackend(),
	)
}

func (s *Tiered) set(ctx context.Context, key string, value []byte) {
	for i, t := range s.tiers {
		if err := t.set(ctx, key, value); err != nil {
			s.log.Warn(ctx, "credential write failed, trying next tier", "tier", i, "key", key, "error", err)
			continue
		}
		return
	}
	s.log.Warn(ctx, "credential write dropped, all tiers failed", "key", key)
}

func (s *Tiered) get(ctx context.Context, key string) []byte {
	for i, t := range s.tiers {
		v, err := t.get(ctx, key)
		if err != nil {
			s.log.Warn(ctx, "credential read failed, trying next tier", "tier", i, "key", key, "error", err)
			continue
		}
		return v
	}
	return nil
}

func (s *Tiered) remove(ctx context.Context, key string) {
	// Clear every tier so a fallback copy cannot resurrect a revoked session.
	for i, t := range s.tiers {
		if err := t.delete(ctx, key); err != nil {
			s.log.Warn(ctx, "credential delete failed", "tier", i, "key", key, "error", err)
		}
	}
}

func (s *Tiered) SaveToken(ctx context.Context, token string) error {
	s.set(ctx, tokenKey, []byte(token))
	return nil
}

func (s *Tiered) Token(ctx context.Context) (string, error) {
	return string(s.get(ctx, tokenKey)), nil
}

func (s *Tiered) RemoveToken(ctx context.Context) error {
	s.remove(ctx, tokenKey)
	return nil
}

func (s *Tiered) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn(ctx, "user record not serializable, dropped", "error", err)
		return nil
	}
	s.set(ctx, userKey, data)
	return nil
}

func (s *Tiered) User(ctx context.Context) (*models.User, error) {
	data := s.get(ctx, userKey)
	if len(data) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn(ctx, "stored user record corrupted, ignored", "error", err)
		return nil, nil
	}
	return &u, nil
}

func (s *Tiered) RemoveUser(ctx context.Context) error {
	s.remove(ctx, userKey)
	return nil
}
