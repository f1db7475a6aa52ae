package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/security"
)

func staffUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           9,
		Name:         "Station Staff",
		Email:        "staff@example.com",
		PasswordHash: string(hash),
		Role:         domain.UserRoleStaff,
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	svc := NewAuthService(users, tokens)

	user := staffUser(t, "correct-horse")
	users.On("GetByEmail", mock.Anything, "staff@example.com").Return(user, nil)

	access, refresh, got, err := svc.Login(context.Background(), "staff@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user, got)

	claims, err := tokens.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int32(9), claims.UserID)
	assert.Equal(t, domain.UserRoleStaff, claims.Role)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, security.NewTokenManager("test-secret", 60, 10080))

	users.On("GetByEmail", mock.Anything, "staff@example.com").Return(staffUser(t, "correct-horse"), nil)

	_, _, _, err := svc.Login(context.Background(), "staff@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, security.NewTokenManager("test-secret", 60, 10080))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, sql.ErrNoRows)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BlockedUser(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, security.NewTokenManager("test-secret", 60, 10080))

	user := staffUser(t, "correct-horse")
	user.IsBlocked = true
	users.On("GetByEmail", mock.Anything, "staff@example.com").Return(user, nil)

	_, _, _, err := svc.Login(context.Background(), "staff@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	users := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	svc := NewAuthService(users, tokens)

	user := staffUser(t, "correct-horse")
	users.On("GetByID", mock.Anything, int32(9)).Return(user, nil)

	refresh, err := tokens.GenerateRefreshToken(9, "staff@example.com")
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	users := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	svc := NewAuthService(users, tokens)

	access, err := tokens.GenerateAccessToken(9, "staff@example.com", domain.UserRoleStaff)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, security.ErrWrongTokenType)
}
