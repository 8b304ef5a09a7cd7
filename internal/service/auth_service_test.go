package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eursukkul/nexo-service/internal/events"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(users *mockUserRepo, pub EventPublisher, adminEmail string) AuthService {
	return NewAuthService(
		users,
		security.NewTokenIssuer("jwt-test-secret", time.Hour),
		security.NewCSRFIssuer("csrf-test-secret", time.Hour),
		pub,
		testLog,
		adminEmail,
	)
}

func registeringRepo(created *[]*models.User) *mockUserRepo {
	return &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = uint(len(*created) + 1)
			*created = append(*created, user)
			return nil
		},
	}
}

func TestRegister_Success(t *testing.T) {
	var created []*models.User
	pub := &fakePublisher{}
	svc := newTestAuthService(registeringRepo(&created), pub, "")

	user, err := svc.Register(context.Background(), "  Asha@Example.COM ", "secret123", " Asha Rai ")

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha Rai", user.FullName)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, security.CheckPassword(user.PasswordHash, "secret123"))
	assert.Equal(t, []string{events.UserRegistered}, pub.keys())
}

func TestRegister_AdminEmailGetsAdminRole(t *testing.T) {
	var created []*models.User
	svc := newTestAuthService(registeringRepo(&created), nil, "Root@Nexo.com")

	user, err := svc.Register(context.Background(), "root@nexo.com", "secret123", "Root")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
	}
	svc := newTestAuthService(repo, nil, "")

	user, err := svc.Register(context.Background(), "asha@example.com", "secret123", "Asha")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)
}

func TestRegister_LostRaceOnUniqueIndex(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, user *models.User) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := newTestAuthService(repo, nil, "")

	_, err := svc.Register(context.Background(), "asha@example.com", "secret123", "Asha")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PublishFailureDoesNotFail(t *testing.T) {
	var created []*models.User
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestAuthService(registeringRepo(&created), pub, "")

	_, err := svc.Register(context.Background(), "asha@example.com", "secret123", "Asha")

	assert.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{ID: 1, Email: "asha@example.com", PasswordHash: hash, Role: models.RoleUser}
	svc := newTestAuthService(usersByID(user), nil, "")

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, errWrong := svc.Login(context.Background(), "asha@example.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginThenAuthenticate(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{ID: 7, Email: "asha@example.com", PasswordHash: hash, Role: models.RoleUser}
	svc := newTestAuthService(usersByID(user), nil, "")

	session, err := svc.Login(context.Background(), "ASHA@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	got, claims, err := svc.Authenticate(context.Background(), session.Token)

	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthenticate_Failures(t *testing.T) {
	hash, _ := security.HashPassword("secret123")
	user := &models.User{ID: 7, Email: "asha@example.com", PasswordHash: hash, Role: models.RoleUser}
	issuer := security.NewTokenIssuer("jwt-test-secret", time.Hour)

	deleted, _, err := issuer.Issue(99, "user")
	require.NoError(t, err)
	badRole, _, err := issuer.Issue(7, "superuser")
	require.NoError(t, err)
	foreign, _, err := security.NewTokenIssuer("other-secret", time.Hour).Issue(7, "user")
	require.NoError(t, err)

	svc := newTestAuthService(usersByID(user), nil, "")

	for name, token := range map[string]string{
		"garbage":        "not-a-jwt",
		"empty":          "",
		"deleted user":   deleted,
		"unknown role":   badRole,
		"foreign secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestCSRF_BoundToSession(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, nil, "")

	token, exp, err := svc.IssueCSRF("session-a")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	assert.NoError(t, svc.VerifyCSRF(token, "session-a"))
	assert.Error(t, svc.VerifyCSRF(token, "session-b"))
	assert.ErrorIs(t, svc.VerifyCSRF("", "session-a"), security.ErrTokenMissing)
}
