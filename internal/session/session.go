// Package session owns the per-visitor client state that is not the cart:
// the site password gate and the language choice.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/redis"
)

// DefaultLanguage applies when a session never picked one.
const DefaultLanguage = "en"

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	LanguageKey(sessionID string) string
	GateKey(sessionID string) string
}

// Service manages the gate and language slots for one session id.
type Service struct {
	store slotStore
	cfg   config.GateConfig
	logg  *logger.Logger
	now   func() time.Time
}

// NewService wires the session service.
func NewService(store slotStore, cfg config.GateConfig, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("slot store required")
	}
	return &Service{store: store, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Unlock checks the site password and issues a signed gate token, mirrored
// to the session slot so a lost cookie does not re-lock the visitor.
func (s *Service) Unlock(ctx context.Context, sessionID, password string) (string, error) {
	if strings.TrimSpace(s.cfg.TokenSecret) == "" {
		return "", pkgerrors.New(pkgerrors.CodeConfigMissing, "gate token secret is not configured")
	}
	if password != s.cfg.SitePassword {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "wrong password")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sign gate token")
	}

	if err := s.store.Set(ctx, s.store.GateKey(sessionID), token, s.cfg.TokenTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "gate slot write failed")
	}
	return token, nil
}

// Unlocked reports whether the session has passed the gate, accepting either
// the presented token or the slot mirror.
func (s *Service) Unlocked(ctx context.Context, sessionID, token string) (bool, error) {
	if s.verify(token, sessionID) {
		return true, nil
	}
	stored, err := s.store.Get(ctx, s.store.GateKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return false, nil
		}
		return false, err
	}
	return s.verify(stored, sessionID), nil
}

// Lock drops the gate slot. The visitor has to re-enter the password.
func (s *Service) Lock(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.store.GateKey(sessionID))
}

func (s *Service) verify(token, sessionID string) bool {
	if token == "" || s.cfg.TokenSecret == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return false
	}
	return claims.Subject == sessionID
}

// Language returns the session's stored language, defaulting to English.
func (s *Service) Language(ctx context.Context, sessionID string) (string, error) {
	raw, err := s.store.Get(ctx, s.store.LanguageKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return DefaultLanguage, nil
		}
		return DefaultLanguage, err
	}
	lang := strings.ToLower(strings.TrimSpace(raw))
	if !validLanguage(lang) {
		return DefaultLanguage, nil
	}
	return lang, nil
}

// SetLanguage stores the language choice for the session.
func (s *Service) SetLanguage(ctx context.Context, sessionID, lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !validLanguage(lang) {
		return pkgerrors.New(pkgerrors.CodeValidation, "language must be a two-letter code").
			WithDetails(map[string]string{"language": lang})
	}
	return s.store.Set(ctx, s.store.LanguageKey(sessionID), lang, 0)
}

func validLanguage(lang string) bool {
	if len(lang) != 2 {
		return false
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
