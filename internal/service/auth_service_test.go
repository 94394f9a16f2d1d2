package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-admin/internal/config"
	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecretKey:   "test-secret-key-0123456789abcdef",
			AccessTokenTTL: time.Hour,
		},
	}
}

func newAuthService(t *testing.T, provider *MockAuthProvider, userRepo *MockUserRepository) AuthService {
	t.Helper()
	svc, err := NewAuthService(provider, userRepo, testConfig())
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(new(MockAuthProvider), new(MockUserRepository), &config.Config{})
	assert.Error(t, err)
}

func TestAuthService_SignIn_Success(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	expectedUser := &domain.User{UID: "uid1", Email: "a@b.com", Name: "Alice", Role: domain.RoleStudent}
	provider.On("VerifyCredentials", mock.Anything, "a@b.com", "secret1").Return("uid1", nil)
	userRepo.On("GetByUID", mock.Anything, "uid1").Return(expectedUser, nil)
	userRepo.On("UpdateFields", mock.Anything, "uid1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, ok := fields["lastLoginAt"]
		return ok && len(fields) == 1
	})).Return(nil)

	user, err := svc.SignIn(context.Background(), "a@b.com", "secret1")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "uid1", user.UID)
	assert.NotNil(t, user.LastLoginAt)
	provider.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_SignIn_AuthenticationFailed(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	providerErr := errors.New("auth: invalid email or password")
	provider.On("VerifyCredentials", mock.Anything, "a@b.com", "wrong").Return("", providerErr)

	user, err := svc.SignIn(context.Background(), "a@b.com", "wrong")

	assert.Nil(t, user)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAuthenticationFailed, domainErr.Code)
	assert.Contains(t, domainErr.Message, "Login failed")
	assert.Contains(t, domainErr.Message, providerErr.Error())
	provider.AssertExpectations(t)
}

func TestAuthService_SignIn_ProfileNotFound(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	provider.On("VerifyCredentials", mock.Anything, "a@b.com", "secret1").Return("uid1", nil)
	userRepo.On("GetByUID", mock.Anything, "uid1").Return(nil, domain.ErrDocumentNotFound)

	user, err := svc.SignIn(context.Background(), "a@b.com", "secret1")

	assert.Nil(t, user)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeProfileNotFound, domainErr.Code)
}

func TestAuthService_SignIn_LastLoginStampIsBestEffort(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	expectedUser := &domain.User{UID: "uid1", Email: "a@b.com", Name: "Alice", Role: domain.RoleStudent}
	provider.On("VerifyCredentials", mock.Anything, "a@b.com", "secret1").Return("uid1", nil)
	userRepo.On("GetByUID", mock.Anything, "uid1").Return(expectedUser, nil)
	userRepo.On("UpdateFields", mock.Anything, "uid1", mock.Anything).Return(errors.New("write failed"))

	user, err := svc.SignIn(context.Background(), "a@b.com", "secret1")

	assert.NoError(t, err)
	assert.NotNil(t, user)
}

func TestAuthService_CreateUser_KeysProfileByUID(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	provider.On("CreateAccount", mock.Anything, "new@b.com", "secret1").Return("newuid", nil)
	userRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.UID == "newuid" && u.CreatedBy == "admin1" && u.Role == domain.RoleStudent &&
			u.IsActive != nil && *u.IsActive && u.CreatedAt > 0
	})).Return(nil)

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "new@b.com",
		Password: "secret1",
		Name:     "New User",
		Role:     "student",
	}, "admin1")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "newuid", user.UID)
	userRepo.AssertExpectations(t)
}

func TestAuthService_CreateUser_ProviderError(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	provider.On("CreateAccount", mock.Anything, "new@b.com", "secret1").
		Return("", errors.New("auth: email already in use"))

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "new@b.com", Password: "secret1", Name: "New User", Role: "student",
	}, "admin1")

	assert.Nil(t, user)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUserCreationFailed, domainErr.Code)
	userRepo.AssertNotCalled(t, "Save")
}

func TestAuthService_CreateUser_ProfileWriteFailureLeavesOrphan(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	provider.On("CreateAccount", mock.Anything, "new@b.com", "secret1").Return("newuid", nil)
	userRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("store unavailable"))

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "new@b.com", Password: "secret1", Name: "New User", Role: "student",
	}, "admin1")

	assert.Nil(t, user)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUserCreationFailed, domainErr.Code)
	// No compensating delete of the provider account.
	provider.AssertNotCalled(t, "DeleteAccount")
}

func TestAuthService_GetUserProfile(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		expectedUser := &domain.User{UID: "uid1", Email: "a@b.com"}
		userRepo.On("GetByUID", mock.Anything, "uid1").Return(expectedUser, nil)

		user, err := svc.GetUserProfile(context.Background(), "uid1")
		assert.NoError(t, err)
		assert.Equal(t, expectedUser, user)
	})

	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		userRepo.On("GetByUID", mock.Anything, "missing").Return(nil, domain.ErrDocumentNotFound)

		user, err := svc.GetUserProfile(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ServiceErrorPropagates", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		repoErr := errors.New("connection refused")
		userRepo.On("GetByUID", mock.Anything, "uid1").Return(nil, repoErr)

		user, err := svc.GetUserProfile(context.Background(), "uid1")
		assert.Nil(t, user)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestAuthService_IsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		want bool
	}{
		{name: "admin", user: &domain.User{UID: "u1", Role: domain.RoleAdmin}, want: true},
		{name: "student", user: &domain.User{UID: "u1", Role: domain.RoleStudent}, want: false},
		{name: "absent", user: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockAuthProvider)
			userRepo := new(MockUserRepository)
			svc := newAuthService(t, provider, userRepo)

			if tt.user != nil {
				userRepo.On("GetByUID", mock.Anything, "u1").Return(tt.user, nil)
			} else {
				userRepo.On("GetByUID", mock.Anything, "u1").Return(nil, domain.ErrDocumentNotFound)
			}

			isAdmin, err := svc.IsAdmin(context.Background(), "u1")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, isAdmin)
		})
	}
}

func TestAuthService_SignOut(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		provider.On("SignOut", mock.Anything, "uid1").Return(nil)
		assert.NoError(t, svc.SignOut(context.Background(), "uid1"))
	})

	t.Run("ProviderError", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		provider.On("SignOut", mock.Anything, "uid1").Return(errors.New("session store down"))
		err := svc.SignOut(context.Background(), "uid1")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSignOutFailed, domainErr.Code)
	})
}

func TestAuthService_ValidateMobileLogin_NeverRaises(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		expectedUser := &domain.User{UID: "uid1", Email: "a@b.com", Name: "Alice", Role: domain.RoleStudent}
		provider.On("VerifyCredentials", mock.Anything, "a@b.com", "secret1").Return("uid1", nil)
		userRepo.On("GetByUID", mock.Anything, "uid1").Return(expectedUser, nil)
		userRepo.On("UpdateFields", mock.Anything, "uid1", mock.Anything).Return(nil)

		result := svc.ValidateMobileLogin(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "secret1"})
		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.NotNil(t, result.User)
		assert.Empty(t, result.Error)
	})

	t.Run("FailureBecomesStructuredResult", func(t *testing.T) {
		provider := new(MockAuthProvider)
		userRepo := new(MockUserRepository)
		svc := newAuthService(t, provider, userRepo)

		provider.On("VerifyCredentials", mock.Anything, "a@b.com", "wrong").
			Return("", errors.New("auth: invalid email or password"))

		result := svc.ValidateMobileLogin(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
		require.NotNil(t, result)
		assert.False(t, result.Success)
		assert.Nil(t, result.User)
		assert.Contains(t, result.Error, "Login failed")
	})
}

func TestAuthService_JWTRoundTrip(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	user := &domain.User{UID: "uid1", Email: "a@b.com"}
	token, err := svc.CreateJWT(user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAuthService_ValidateJWT_Invalid(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	_, err := svc.ValidateJWT(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_ValidateJWT_Expired(t *testing.T) {
	provider := new(MockAuthProvider)
	userRepo := new(MockUserRepository)
	svc := newAuthService(t, provider, userRepo)

	token, err := svc.CreateJWT(&domain.User{UID: "uid1"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
