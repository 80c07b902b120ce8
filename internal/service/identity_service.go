package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vintage-atelier/internal/cart"
	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session token lifetime. The token is a session handle, not an access
// credential, so it is deliberately long-lived.
const SessionTokenExpiry = 30 * 24 * time.Hour

// Placeholder contact details used when a login identifier does not carry
// them, matching the storefront's mock login.
const (
	placeholderName  = "Пользователь"
	placeholderEmail = "user@example.com"
	placeholderPhone = "+7 900 123-45-67"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrNotLoggedIn    = errors.New("no saved profile for session")
)

// RegisterForm carries the profile fields collected at registration. The
// password fields of the storefront form are accepted by the transport layer
// and discarded here.
type RegisterForm struct {
	Name               string
	Email              string
	Phone              string
	Telegram           string
	RegistrationMethod string
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name     string
	Email    string
	Phone    string
	Telegram string
}

// IdentityService is a stub identity provider: it fabricates user records
// without verifying any credential, exactly like the storefront's mock
// login. It is NOT a security boundary — the session token it issues only
// keys the session's cart and mirrored state, it proves nothing about who
// holds it.
type IdentityService interface {
	Register(ctx context.Context, sessionID string, form RegisterForm) (token string, user *domain.User, err error)
	Login(ctx context.Context, sessionID, identifier string) (token string, user *domain.User, err error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, sessionID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, sessionID string, update ProfileUpdate) (*domain.User, error)
	ParseSessionToken(token string) (sessionID string, err error)
}

// SessionClaims is the JWT payload of a session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type identityService struct {
	states    repository.StateRepository
	carts     *cart.Store
	jwtSecret string
	logger    *zap.Logger
}

// NewIdentityService creates a new instance of IdentityService.
func NewIdentityService(
	states repository.StateRepository,
	carts *cart.Store,
	jwtSecret string,
	logger *zap.Logger,
) IdentityService {
	return &identityService{
		states:    states,
		carts:     carts,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register fabricates a profile from the submitted form, saves it for the
// session and issues a session token bound to the same session, so the
// guest cart survives registration.
func (s *identityService) Register(ctx context.Context, sessionID string, form RegisterForm) (string, *domain.User, error) {
	method := form.RegistrationMethod
	switch method {
	case domain.RegistrationMethodEmail, domain.RegistrationMethodPhone, domain.RegistrationMethodTelegram:
	default:
		method = domain.RegistrationMethodEmail
	}

	user := &domain.User{
		ID:                 uuid.New(),
		Name:               form.Name,
		Email:              form.Email,
		Phone:              form.Phone,
		Telegram:           form.Telegram,
		RegistrationMethod: method,
		CreatedAt:          time.Now().UTC(),
	}

	return s.saveAndIssue(ctx, sessionID, user)
}

// Login fabricates a profile from the identifier alone. No credential is
// checked; fields the identifier does not carry fall back to placeholders.
func (s *identityService) Login(ctx context.Context, sessionID, identifier string) (string, *domain.User, error) {
	user := &domain.User{
		ID:                 uuid.New(),
		Name:               placeholderName,
		Email:              placeholderEmail,
		Phone:              placeholderPhone,
		RegistrationMethod: domain.RegistrationMethodEmail,
		CreatedAt:          time.Now().UTC(),
	}
	if strings.Contains(identifier, "@") {
		user.Email = identifier
	} else if strings.HasPrefix(identifier, "+") {
		user.Phone = identifier
		user.RegistrationMethod = domain.RegistrationMethodPhone
	}

	return s.saveAndIssue(ctx, sessionID, user)
}

// Logout drops the session's mirrored state and empties its cart.
func (s *identityService) Logout(ctx context.Context, sessionID string) error {
	if err := s.states.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to drop session state: %w", err)
	}

	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.Clear()
	})

	s.logger.Info("Session logged out", zap.String("session_id", sessionID))
	return nil
}

// Profile returns the saved profile for the session.
func (s *identityService) Profile(ctx context.Context, sessionID string) (*domain.User, error) {
	state, err := s.states.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state.User == nil {
		return nil, ErrNotLoggedIn
	}
	return state.User, nil
}

// UpdateProfile replaces the editable fields of the saved profile and writes
// it through to the mirror.
func (s *identityService) UpdateProfile(ctx context.Context, sessionID string, update ProfileUpdate) (*domain.User, error) {
	state, err := s.states.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state.User == nil {
		return nil, ErrNotLoggedIn
	}

	state.User.Name = update.Name
	state.User.Email = update.Email
	state.User.Phone = update.Phone
	state.User.Telegram = update.Telegram

	if err := s.states.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return state.User, nil
}

// ParseSessionToken validates a session token and returns the session id it
// carries.
func (s *identityService) ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}

func (s *identityService) saveAndIssue(ctx context.Context, sessionID string, user *domain.User) (string, *domain.User, error) {
	state, err := s.states.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrStateNotFound) {
			return "", nil, fmt.Errorf("failed to load session state: %w", err)
		}
		state = &repository.SessionState{}
	}
	state.User = user

	if err := s.states.Save(ctx, sessionID, state); err != nil {
		return "", nil, fmt.Errorf("failed to save profile: %w", err)
	}

	token, err := s.issueSessionToken(sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Stub identity created",
		zap.String("session_id", sessionID),
		zap.String("user_id", user.ID.String()),
		zap.String("method", user.RegistrationMethod),
	)
	return token, user, nil
}

func (s *identityService) issueSessionToken(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
