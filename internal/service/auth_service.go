package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/nexo-service/internal/events"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/Eursukkul/nexo-service/pkg/security"
	"gorm.io/gorm"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Authenticate resolves a session token to its user. Every failure wraps
	// ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*models.User, *security.SessionClaims, error)
	IssueCSRF(sessionID string) (string, time.Time, error)
	VerifyCSRF(token, sessionID string) error
}

type authService struct {
	users      repository.UserRepository
	tokens     *security.TokenIssuer
	csrf       *security.CSRFIssuer
	publisher  EventPublisher
	log        *logger.Logger
	adminEmail string
}

func NewAuthService(users repository.UserRepository, tokens *security.TokenIssuer, csrf *security.CSRFIssuer,
	publisher EventPublisher, log *logger.Logger, adminEmail string) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		csrf:       csrf,
		publisher:  publisher,
		log:        log,
		adminEmail: normalizeEmail(adminEmail),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	publish(ctx, s.publisher, s.log, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	})

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := security.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, *security.SessionClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if !models.Role(claims.Role).Valid() {
		return nil, nil, fmt.Errorf("%w: unknown role %q", ErrUnauthenticated, claims.Role)
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if !user.Role.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown role %q", ErrUnauthenticated, user.Role)
	}

	return user, claims, nil
}

func (s *authService) IssueCSRF(sessionID string) (string, time.Time, error) {
	return s.csrf.Issue(sessionID)
}

func (s *authService) VerifyCSRF(token, sessionID string) error {
	return s.csrf.Verify(token, sessionID)
}
