package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
	"github.com/propfinder/listing-api/pkg/kv"
)

// sessionKeyPrefix namespaces persisted sessions per identity.
const sessionKeyPrefix = "sessions:"

// demoAccounts is the fixed allow-list forming the entire authentication
// backend. Secrets are compared exactly, without normalization or hashing.
var demoAccounts = []models.DemoAccount{
	{Email: "admin@test.com", Password: "admin123", Role: models.RoleAdmin},
	{Email: "manager@test.com", Password: "manager123", Role: models.RoleManager},
	{Email: "user@test.com", Password: "user123", Role: models.RoleUser},
}

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService resolves identities against the demo allow-list, persists the
// active session and issues access tokens.
type AuthService struct {
	sessions  kv.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(sessions kv.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiration <= 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{sessions: sessions, validator: validate, logger: logger, config: config}
}

// Login authenticates a credential pair against the allow-list. A failed
// match is a normal negative outcome; the message never distinguishes an
// unknown identity from a wrong secret.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	for _, account := range demoAccounts {
		if account.Email == req.Email && account.Password == req.Password {
			return s.openSession(ctx, models.Session{Email: account.Email, Role: account.Role})
		}
	}

	return nil, appErrors.ErrInvalidCredentials
}

// Signup accepts any identity/role pair without checking it against the
// allow-list or previously registered identities, and activates a session
// for it. A sign-up can therefore shadow a reserved demo identity.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	return s.openSession(ctx, models.Session{Email: req.Email, Role: models.UserRole(req.Role)})
}

// CurrentSession returns the persisted session for an identity. A corrupt
// persisted value is treated as no session and cleared.
func (s *AuthService) CurrentSession(ctx context.Context, email string) (*models.Session, error) {
	data, err := s.sessions.Get(ctx, sessionKeyPrefix+email)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read session")
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil || !session.Role.Valid() {
		s.logger.Warn("clearing corrupt session record", zap.String("email", email))
		if delErr := s.sessions.Delete(ctx, sessionKeyPrefix+email); delErr != nil {
			s.logger.Warn("failed to clear corrupt session", zap.Error(delErr))
		}
		return nil, nil
	}
	return &session, nil
}

// Logout clears the persisted session, revoking outstanding tokens for the
// identity.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	if err := s.sessions.Delete(ctx, sessionKeyPrefix+email); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// ValidateToken parses and verifies an access token and confirms the session
// behind it is still live.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}

	session, err := s.CurrentSession(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Role != claims.Role {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session is no longer active")
	}

	return claims, nil
}

func (s *AuthService) openSession(ctx context.Context, session models.Session) (*models.AuthResponse, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize session")
	}
	if err := s.sessions.Set(ctx, sessionKeyPrefix+session.Email, data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	now := time.Now()
	expiresAt := now.Add(s.config.Expiration)
	claims := models.JWTClaims{
		Email: session.Email,
		Role:  session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Email,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	s.logger.Info("session opened", zap.String("email", session.Email), zap.String("role", string(session.Role)))

	return &models.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		User:        session,
		IssuedAt:    now,
	}, nil
}
