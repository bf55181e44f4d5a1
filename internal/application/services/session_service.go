package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/providers"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionService issues opaque tokens for authenticated accounts and resolves
// them back to an identity on each request. Sessions live in the cache
// provider; when none is configured (Redis unavailable) they fall back to an
// in-process store.
type SessionService struct {
	cache providers.CacheProvider
	ttl   time.Duration
	local *localSessionStore
}

// NewSessionService creates a new session service.
func NewSessionService(cache providers.CacheProvider, ttl time.Duration) *SessionService {
	return &SessionService{
		cache: cache,
		ttl:   ttl,
		local: newLocalSessionStore(),
	}
}

// Create establishes a session for the account and returns it.
func (s *SessionService) Create(ctx context.Context, account *entities.Account) (*entities.Session, error) {
	session := &entities.Session{
		Token:     uuid.New().String(),
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: time.Now().UTC(),
	}

	if s.cache == nil {
		s.local.put(session, s.ttl)
		return session, nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+session.Token, data, int(s.ttl.Seconds())); err != nil {
		return nil, apperrors.NewInternalError("failed to store session", err)
	}

	return session, nil
}

// Get resolves a token to its session, failing with an unauthorized error
// for unknown or expired tokens.
func (s *SessionService) Get(ctx context.Context, token string) (*entities.Session, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("missing session token")
	}

	if s.cache == nil {
		session, ok := s.local.get(token)
		if !ok {
			return nil, apperrors.NewUnauthorizedError("session expired or unknown")
		}
		return session, nil
	}

	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("session expired or unknown")
	}

	session := &entities.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}

	return session, nil
}

// Destroy removes a session, returning the caller to the anonymous state.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if s.cache == nil {
		s.local.delete(token)
		return nil
	}

	if err := s.cache.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return apperrors.NewInternalError("failed to destroy session", err)
	}
	return nil
}

type localSessionStore struct {
	mu       sync.Mutex
	sessions map[string]localSessionEntry
}

type localSessionEntry struct {
	session   *entities.Session
	expiresAt time.Time
}

func newLocalSessionStore() *localSessionStore {
	return &localSessionStore{
		sessions: make(map[string]localSessionEntry),
	}
}

func (l *localSessionStore) put(session *entities.Session, ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[session.Token] = localSessionEntry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}
}

func (l *localSessionStore) get(token string) (*entities.Session, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(l.sessions, token)
		return nil, false
	}
	return entry.session, true
}

func (l *localSessionStore) delete(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, token)
}
