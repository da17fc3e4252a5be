// Package session owns the process-wide authentication identity. A
// Session is constructed once at startup and passed explicitly to every
// consumer that needs it; there is no ambient singleton.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/models"
	"github.com/odai307/gagoforge-client/internal/tokenstore"
)

// Claims mirrors the backend's JWT payload. Only the expiry and username
// are inspected locally; signature verification is the server's business.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.AuthTokens, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

type Session struct {
	tokens tokenstore.Store
	auth   AuthAPI

	mu       sync.RWMutex
	user     *models.User
	loggedIn bool
}

func New(tokens tokenstore.Store, auth AuthAPI) *Session {
	return &Session{tokens: tokens, auth: auth}
}

// Init probes stored credentials. No token means anonymous. A stored
// token is confirmed against /api/users/me/; rejection clears it. When
// the server is unreachable the tokens are kept for a later retry and
// the session stays anonymous.
func (s *Session) Init(ctx context.Context) error {
	access, ok := s.tokens.Access(ctx)
	if !ok {
		return nil
	}

	if claims := peekClaims(access); claims != nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
			if _, hasRefresh := s.tokens.Refresh(ctx); !hasRefresh {
				// Expired with no refresh token; a probe would only 401.
				_ = s.tokens.Clear(ctx)
				return nil
			}
		}
		if claims.Username != "" {
			// Provisional identity for display until the server confirms.
			s.setUser(&models.User{Username: claims.Username}, false)
		}
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnreachable) {
			s.setUser(nil, false)
			return err
		}
		logger.Log.Warn("Stored credentials rejected", zap.Error(err))
		_ = s.tokens.Clear(ctx)
		s.setUser(nil, false)
		return nil
	}
	s.setUser(user, true)
	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) (*models.User, error) {
	tokens, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, tokens.Access, tokens.Refresh); err != nil {
		return nil, err
	}
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	s.setUser(user, true)
	logger.Log.Info("User logged in", zap.String("username", user.Username))
	return user, nil
}

func (s *Session) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, resp.Tokens.Access, resp.Tokens.Refresh); err != nil {
		return nil, err
	}
	user := resp.User
	s.setUser(&user, true)
	logger.Log.Info("User registered", zap.String("username", user.Username))
	return &user, nil
}

// Logout tears the session down: stored credentials are cleared and the
// identity resets to anonymous.
func (s *Session) Logout(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		logger.Log.Warn("Failed to clear stored tokens on logout", zap.Error(err))
	}
	s.setUser(nil, false)
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) setUser(user *models.User, loggedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = loggedIn
}

func peekClaims(token string) *Claims {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
