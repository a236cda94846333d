package application

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
)

// AuthService gates the admin API behind a single configured credential.
type AuthService struct {
	user     string
	password string
	sessions *SessionManager
	limiter  *RateLimiter
	logger   *zap.Logger
}

func NewAuthService(user, password string, sessions *SessionManager, limiter *RateLimiter, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{user: user, password: password, sessions: sessions, limiter: limiter, logger: logger}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login checks the credential and issues a session. An empty configured
// password disables login entirely.
func (s *AuthService) Login(user, password, clientKey string) (*LoginResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow("login:" + clientKey); err != nil {
			return nil, err
		}
	}
	if s.password == "" {
		return nil, fmt.Errorf("%w: admin login is disabled", domain.ErrUnauthorized)
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("admin login rejected", zap.String("client", clientKey))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, expires := s.sessions.Issue(user)
	s.logger.Info("admin login", zap.String("client", clientKey))
	return &LoginResult{Token: token, ExpiresAt: expires}, nil
}

func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// Authenticate resolves a bearer token to the admin user.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}
	user, ok := s.sessions.Resolve(token)
	if !ok {
		return "", fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	}
	return user, nil
}
