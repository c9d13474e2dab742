package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

type tokenStore interface {
	Save(token models.MagicLinkToken)
	Consume(id string) (models.MagicLinkToken, bool)
}

// AuthConfig defines configuration for the passwordless sign-in flow.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	MagicLinkTTL  time.Duration
	BaseURL       string
	AllowDemoAuth bool
	Issuer        string
}

// AuthService implements the magic-link sign-in flow and the demo bypass.
// The resulting session gates dashboard routes; it is a navigation
// convenience, not an authorization boundary over the underlying data.
type AuthService struct {
	tokens    tokenStore
	mailer    Mailer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(tokens tokenStore, mailer Mailer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	if config.MagicLinkTTL <= 0 {
		config.MagicLinkTTL = 15 * time.Minute
	}
	if config.Issuer == "" {
		config.Issuer = "riskwatch-api"
	}
	return &AuthService{
		tokens:    tokens,
		mailer:    mailer,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
}

// RequestLink issues a single-use sign-in token and dispatches it to the
// given address. Failures are surfaced; no retry is attempted.
func (s *AuthService) RequestLink(ctx context.Context, req models.RequestLinkRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid email address")
	}

	secret, err := randomToken()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create sign-in token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create sign-in token")
	}

	token := models.MagicLinkToken{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		SecretHash: hash,
		ExpiresAt:  s.now().Add(s.config.MagicLinkTTL),
	}
	s.tokens.Save(token)

	link := fmt.Sprintf("%s/auth/verify?token=%s.%s", s.config.BaseURL, token.ID, secret)
	if err := s.mailer.SendLoginLink(ctx, token.Email, link); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send sign-in link")
	}

	s.logger.Info("sign-in link requested", zap.String("email", token.Email))
	return nil
}

// Verify exchanges an emailed token for a session. Tokens are single-use;
// a second verification attempt fails even within the TTL.
func (s *AuthService) Verify(ctx context.Context, rawToken string) (*models.SessionResponse, error) {
	id, secret, found := strings.Cut(rawToken, ".")
	if !found || id == "" || secret == "" {
		return nil, appErrors.Clone(appErrors.ErrLinkExpired, "malformed sign-in token")
	}

	token, ok := s.tokens.Consume(id)
	if !ok {
		return nil, appErrors.ErrLinkExpired
	}
	if err := bcrypt.CompareHashAndPassword(token.SecretHash, []byte(secret)); err != nil {
		return nil, appErrors.ErrLinkExpired
	}

	return s.issueSession(token.Email, false)
}

// DemoSession issues a session without an email round-trip. Only available
// when demo auth is enabled.
func (s *AuthService) DemoSession() (*models.SessionResponse, error) {
	if !s.config.AllowDemoAuth {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "demo sign-in is disabled")
	}
	return s.issueSession("", true)
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has been signed out")
	}

	return claims, nil
}

// Logout revokes the session carried by the token. An already-invalid token
// is not an error; signing out is idempotent.
func (s *AuthService) Logout(tokenString string) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now()
	for id, expiry := range s.revoked {
		if expiry.Before(cutoff) {
			delete(s.revoked, id)
		}
	}
	expiry := cutoff.Add(s.config.SessionTTL)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	s.revoked[claims.ID] = expiry
}

func (s *AuthService) issueSession(email string, demo bool) (*models.SessionResponse, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.SessionTTL)
	subject := email
	if demo {
		subject = "demo"
	}
	claims := &models.SessionClaims{
		Email: email,
		Demo:  demo,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session")
	}

	return &models.SessionResponse{
		Token:     signed,
		Email:     email,
		Demo:      demo,
		ExpiresAt: expiresAt,
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
