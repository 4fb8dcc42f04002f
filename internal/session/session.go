// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the admin's bearer-token pair.
//
// A [Session] is constructed from a durable [store.KeyValueStore], loads any
// tokens persisted by a previous run, and is then owned by the API client.
// Its lifecycle is New → SetTokens → Refresh → Clear. Concurrent refresh
// requests are collapsed into a single call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

// Keys under which the session is persisted.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	// KeyAuthenticated is a legacy flag. It is written on SetTokens and
	// removed on Clear, but never read.
	KeyAuthenticated = "admin_authenticated"
)

const refreshFlightKey = "refresh"

// RefreshFunc exchanges a refresh token for a new token pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (models.TokenPair, error)

// Session is the in-memory token slot backed by a key-value store.
type Session struct {
	store  store.KeyValueStore
	logger *logger.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	group singleflight.Group
}

// New returns a Session over kv, loading previously persisted tokens.
// Missing keys load as empty strings.
func New(ctx context.Context, kv store.KeyValueStore, log *logger.Logger) (*Session, error) {
	s := &Session{store: kv, logger: log}

	access, err := s.load(ctx, KeyAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.load(ctx, KeyRefreshToken)
	if err != nil {
		return nil, err
	}

	s.accessToken, s.refreshToken = access, refresh
	return s, nil
}

func (s *Session) load(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

// SetTokens persists both tokens in one write and makes them current.
// On a store error the in-memory pair is left unchanged.
func (s *Session) SetTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.SetMany(ctx, map[string]string{
		KeyAccessToken:   access,
		KeyRefreshToken:  refresh,
		KeyAuthenticated: "true",
	})
	if err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}

	s.accessToken, s.refreshToken = access, refresh
	return nil
}

// AccessToken returns the current access token or "".
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token or "".
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// IsAuthenticated reports whether an access token is present. Expiry is not
// checked.
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// Clear forgets both tokens and removes them, together with the legacy flag,
// from the store. The in-memory pair is always cleared, even when the store
// delete fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken, s.refreshToken = "", ""

	if err := s.store.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyAuthenticated); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh token via fn. Without a refresh
// token it returns false and fn is not called. On success the new pair is
// persisted and Refresh returns true; on failure the session is cleared.
// A failure caused by cancellation of ctx leaves the tokens in place.
//
// Callers arriving while a refresh is in flight wait for it and share its
// result. The in-flight call runs with the first caller's ctx.
func (s *Session) Refresh(ctx context.Context, fn RefreshFunc) bool {
	v, _, _ := s.group.Do(refreshFlightKey, func() (any, error) {
		token := s.RefreshToken()
		if token == "" {
			return false, nil
		}

		pair, err := fn(ctx, token)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Debug().Err(err).Str("func", "*Session.Refresh").Msg("token refresh abandoned, keeping session")
				return false, nil
			}
			s.logger.Warn().Err(err).Str("func", "*Session.Refresh").Msg("token refresh failed, clearing session")
			if clearErr := s.Clear(ctx); clearErr != nil {
				s.logger.Err(clearErr).Str("func", "*Session.Refresh").Msg("error clearing session")
			}
			return false, nil
		}

		if err := s.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
			s.logger.Err(err).Str("func", "*Session.Refresh").Msg("error persisting refreshed tokens")
			return false, nil
		}

		s.logger.Debug().Str("func", "*Session.Refresh").Msg("tokens refreshed")
		return true, nil
	})

	ok, _ := v.(bool)
	return ok
}
