package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-admin/internal/config"
	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/middleware"
	"quiz-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService is a mock type for service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockAuthService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) ValidateMobileLogin(ctx context.Context, creds dto.LoginRequest) *dto.MobileLoginResult {
	args := m.Called(ctx, creds)
	return args.Get(0).(*dto.MobileLoginResult)
}

func (m *MockAuthService) CreateJWT(user *domain.User, ttl time.Duration) (string, error) {
	args := m.Called(user, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

var _ service.AuthService = (*MockAuthService)(nil)

func setupAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAuthHandler(svc, &config.Config{Auth: config.AuthConfig{AccessTokenTTL: time.Hour}})
	app.Post("/auth/login", h.Login)
	app.Post("/auth/validate", h.ValidateMobileLogin)
	app.Get("/auth/profile", h.GetProfile)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		user := &domain.User{UID: "u1", Email: "a@b.com", Name: "Alice", Role: domain.RoleAdmin}
		svc.On("SignIn", mock.Anything, "a@b.com", "secret1").Return(user, nil)
		svc.On("CreateJWT", user, time.Hour).Return("signed-token", nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@b.com", Password: "secret1"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.LoginResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "signed-token", body.Token)
		assert.Equal(t, "u1", body.User.UID)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("SignIn", mock.Anything, "a@b.com", "wrong!").
			Return(nil, domain.NewAuthenticationFailedError(assert.AnError))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@b.com", Password: "wrong!"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body middleware.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, string(domain.CodeAuthenticationFailed), body.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", dto.LoginRequest{}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body middleware.ValidationErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, string(domain.CodeValidation), body.Code)
		assert.NotEmpty(t, body.Errors)
		svc.AssertNotCalled(t, "SignIn")
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("MissingUID", func(t *testing.T) {
		app := setupAuthApp(new(MockAuthService))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/profile", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body dto.ProfileEnvelope
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.Equal(t, "User ID is required", body.Error)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("GetUserProfile", mock.Anything, "missing").Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/profile?uid=missing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body dto.ProfileEnvelope
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.Equal(t, "User not found", body.Error)
	})

	t.Run("Found", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("GetUserProfile", mock.Anything, "u1").
			Return(&domain.User{UID: "u1", Email: "a@b.com", Name: "Alice", Role: domain.RoleStudent}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/profile?uid=u1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.ProfileEnvelope
		decodeBody(t, resp, &body)
		assert.True(t, body.Success)
		require.NotNil(t, body.User)
		assert.Equal(t, "u1", body.User.UID)
		assert.Empty(t, body.Error)
	})

	t.Run("ServiceError", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("GetUserProfile", mock.Anything, "u1").
			Return(nil, domain.NewInternalError("failed to fetch user profile", assert.AnError))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/profile?uid=u1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body dto.ProfileEnvelope
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.Equal(t, "Internal server error", body.Error)
	})
}

func TestAuthHandler_ValidateMobileLogin_AlwaysAnswers200(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("ValidateMobileLogin", mock.Anything, dto.LoginRequest{Email: "a@b.com", Password: "secret1"}).
			Return(&dto.MobileLoginResult{Success: true, User: &domain.User{UID: "u1"}})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/validate", dto.LoginRequest{Email: "a@b.com", Password: "secret1"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.MobileLoginResult
		decodeBody(t, resp, &body)
		assert.True(t, body.Success)
	})

	t.Run("FailureStaysA200", func(t *testing.T) {
		svc := new(MockAuthService)
		app := setupAuthApp(svc)

		svc.On("ValidateMobileLogin", mock.Anything, mock.Anything).
			Return(&dto.MobileLoginResult{Success: false, Error: "Login failed: invalid email or password"})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/validate", dto.LoginRequest{Email: "a@b.com", Password: "wrong!"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.MobileLoginResult
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Error)
	})
}
