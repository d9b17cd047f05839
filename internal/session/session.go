// Package session provides Valkey-backed guest session management.
// App users can browse without registering: the client requests a guest
// identity once, then presents it via the X-Guest-ID header so language
// preference survives across requests. Guests are stored as JSON in Valkey
// with a sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// HeaderName is the request header carrying the guest identity.
	HeaderName = "X-Guest-ID"

	// DefaultTTL is how long an idle guest lives in Valkey before expiry.
	// Touch resets the clock, so active guests never expire.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces guest keys in Valkey to avoid collisions.
	keyPrefix = "guest:"
)

// Guest holds the session payload stored in Valkey.
type Guest struct {
	ID         uuid.UUID `json:"id"`
	Language   string    `json:"language_preference"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Store manages guest lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a guest store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Create registers a new guest with the given language preference and
// returns it. The caller sends the returned ID back on future requests.
func (s *Store) Create(ctx context.Context, language string) (*Guest, error) {
	now := time.Now()
	guest := &Guest{
		ID:         uuid.New(),
		Language:   language,
		CreatedAt:  now,
		LastActive: now,
	}
	if err := s.save(ctx, guest); err != nil {
		return nil, fmt.Errorf("guest create: %w", err)
	}
	return guest, nil
}

// Get retrieves a guest by ID. Returns nil if the guest is unknown or
// expired; a stale client ID is not an error.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Guest, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guest get: %w", err)
	}

	var guest Guest
	if err := json.Unmarshal(payload, &guest); err != nil {
		return nil, fmt.Errorf("guest unmarshal: %w", err)
	}
	return &guest, nil
}

// Touch refreshes a guest's last-active timestamp and slides the TTL.
func (s *Store) Touch(ctx context.Context, guest *Guest) error {
	guest.LastActive = time.Now()
	if err := s.save(ctx, guest); err != nil {
		return fmt.Errorf("guest touch: %w", err)
	}
	return nil
}

// SetLanguage updates a guest's language preference.
func (s *Store) SetLanguage(ctx context.Context, guest *Guest, language string) error {
	guest.Language = language
	guest.LastActive = time.Now()
	if err := s.save(ctx, guest); err != nil {
		return fmt.Errorf("guest set language: %w", err)
	}
	return nil
}

// Delete removes a guest from Valkey.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("guest delete: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, guest *Guest) error {
	payload, err := json.Marshal(guest)
	if err != nil {
		return fmt.Errorf("guest marshal: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+guest.ID.String(), payload, s.ttl).Err()
}
