package voice

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hotseat-games/millionaire/internal/dependencies/clock"
	"github.com/hotseat-games/millionaire/internal/model"
)

// Errors
var (
	ErrMissingSecret = errors.New("voice credential secret is required")
)

// Config holds settings for voice credential issuance
type Config struct {
	// ApplicationID is the voice application this credential is scoped to
	ApplicationID string

	// Secret signs issued credentials
	Secret string

	// CredentialTTL bounds how long an issued credential stays valid
	CredentialTTL time.Duration
}

// DefaultConfig returns default voice configuration
func DefaultConfig() Config {
	return Config{
		CredentialTTL: 15 * time.Minute,
	}
}

// Service issues short-lived credentials for voice session setup.
// Credentials are ephemeral: callers hand them to the client and never
// store them.
type Service struct {
	cfg   Config
	clock clock.Clock
}

// New creates a new voice Service
func New(cfg Config, clock clock.Clock) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.CredentialTTL == 0 {
		cfg.CredentialTTL = DefaultConfig().CredentialTTL
	}
	return &Service{
		cfg:   cfg,
		clock: clock,
	}, nil
}

// credentialClaims scopes a credential to one game's voice session
type credentialClaims struct {
	jwt.RegisteredClaims
	GameID string              `json:"game_id"`
	ACL    map[string][]string `json:"acl"`
}

// IssueCredential returns a signed short-lived token for the given game
func (s *Service) IssueCredential(gameID model.GameID) (string, error) {
	now := s.clock.Now()

	claims := credentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "game_user",
			Issuer:    s.cfg.ApplicationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.CredentialTTL)),
		},
		GameID: string(gameID),
		ACL: map[string][]string{
			"paths": {"/*/users/**", "/*/conversations/**", "/*/sessions/**", "/*/legs/**"},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// VerifyCredential parses and validates a credential, returning its game id.
// Used by tests and by the voice webhook to sanity-check inbound sessions.
func (s *Service) VerifyCredential(credential string) (model.GameID, error) {
	var claims credentialClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", err
	}
	return model.GameID(claims.GameID), nil
}
