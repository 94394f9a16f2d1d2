package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-admin/internal/config"
	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService is the credential/profile gateway. All identity operations go
// through it; no other component touches the auth provider or the key/uid
// invariant of the users collection directly.
type AuthService interface {
	// SignIn authenticates against the provider, then loads the profile
	// document keyed by the returned uid.
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	// CreateUser creates the provider account, then writes the profile
	// document keyed by the new uid. Not transactional: a profile write
	// failure leaves an orphaned provider account.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)
	// GetUserProfile returns (nil, nil) when no profile exists, keeping
	// "absent" distinct from propagated service errors.
	GetUserProfile(ctx context.Context, uid string) (*domain.User, error)
	SignOut(ctx context.Context, uid string) error
	// IsAdmin treats "not found" and "found but not admin" identically.
	IsAdmin(ctx context.Context, uid string) (bool, error)
	// ValidateMobileLogin never returns an error; any underlying failure
	// becomes a structured success=false result.
	ValidateMobileLogin(ctx context.Context, creds dto.LoginRequest) *dto.MobileLoginResult
	CreateJWT(user *domain.User, ttl time.Duration) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	provider  domain.AuthProvider
	userRepo  domain.UserRepository
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(provider domain.AuthProvider, userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.Auth.JWTSecretKey) == 0 {
		return nil, errors.New("jwt secret key for auth service is not configured")
	}
	return &authServiceImpl{
		provider:  provider,
		userRepo:  userRepo,
		appConfig: appConfig,
	}, nil
}

func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	appLogger := logger.Get()

	uid, err := s.provider.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, domain.NewAuthenticationFailedError(err)
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, domain.NewProfileNotFoundError(uid)
		}
		return nil, domain.NewInternalError("failed to load user profile", err)
	}

	// Stamp the login time; a failure here must not fail the sign-in.
	now := time.Now().UnixMilli()
	if err := s.userRepo.UpdateFields(ctx, uid, map[string]interface{}{"lastLoginAt": now}); err != nil {
		appLogger.Warn("Failed to stamp lastLoginAt", zap.String("uid", uid), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	appLogger.Info("User signed in", zap.String("uid", uid), zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	appLogger := logger.Get()

	uid, err := s.provider.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, domain.NewUserCreationFailedError(err)
	}

	isActive := true
	user := &domain.User{
		UID:       uid,
		Email:     req.Email,
		Name:      req.Name,
		Role:      domain.Role(req.Role),
		CreatedAt: time.Now().UnixMilli(),
		CreatedBy: actorID,
		IsActive:  &isActive,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		// No compensating rollback: the provider account stays behind
		// without a profile until an operator cleans it up.
		appLogger.Error("Profile write failed after account creation; auth account orphaned",
			zap.String("uid", uid), zap.String("email", req.Email), zap.Error(err))
		return nil, domain.NewUserCreationFailedError(err)
	}

	appLogger.Info("User created", zap.String("uid", uid), zap.String("email", user.Email), zap.String("createdBy", actorID))
	return user, nil
}

func (s *authServiceImpl) GetUserProfile(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, nil
		}
		logger.Get().Error("Failed to fetch user profile", zap.String("uid", uid), zap.Error(err))
		return nil, domain.NewInternalError("failed to fetch user profile", err)
	}
	return user, nil
}

func (s *authServiceImpl) SignOut(ctx context.Context, uid string) error {
	if err := s.provider.SignOut(ctx, uid); err != nil {
		return domain.NewSignOutFailedError(err)
	}
	return nil
}

func (s *authServiceImpl) IsAdmin(ctx context.Context, uid string) (bool, error) {
	user, err := s.GetUserProfile(ctx, uid)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == domain.RoleAdmin, nil
}

func (s *authServiceImpl) ValidateMobileLogin(ctx context.Context, creds dto.LoginRequest) *dto.MobileLoginResult {
	user, err := s.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return &dto.MobileLoginResult{Success: false, Error: err.Error()}
	}
	return &dto.MobileLoginResult{Success: true, User: user}
}

func (s *authServiceImpl) CreateJWT(user *domain.User, ttl time.Duration) (string, error) {
	claims := dto.AuthClaims{
		UserID:    user.UID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   user.UID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.appConfig.Auth.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.appConfig.Auth.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
