package service

import (
	"context"
	"errors"
	"time"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"

	"go.uber.org/zap"
)

// UserService covers the user management screen: listing, editing and
// removing profiles. Account creation lives on the gateway because it spans
// the auth provider and the profile collection.
type UserService interface {
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	// UpdateUser rewrites the mutable profile fields and stamps the acting
	// admin.
	UpdateUser(ctx context.Context, uid string, req dto.UpdateUserRequest, actorID string) error
	// DeleteUser removes the profile document and then the provider
	// account. Account deletion failure is logged, not fatal.
	DeleteUser(ctx context.Context, uid string) error
}

type userServiceImpl struct {
	userRepo domain.UserRepository
	provider domain.AuthProvider
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository, provider domain.AuthProvider) UserService {
	return &userServiceImpl{userRepo: userRepo, provider: provider}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}

	resp := &dto.UserListResponse{Users: users}
	for _, u := range users {
		switch u.Role {
		case domain.RoleAdmin:
			resp.AdminCount++
		case domain.RoleStudent:
			resp.StudentCount++
		}
	}
	return resp, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, uid string, req dto.UpdateUserRequest, actorID string) error {
	var errs domain.ValidationErrors
	if req.Name == "" {
		errs = append(errs, domain.NewMissingFieldError("name"))
	}
	if !domain.Role(req.Role).Valid() {
		errs = append(errs, domain.NewValidationError("role", "must be one of: admin, student"))
	}
	if len(errs) > 0 {
		return errs
	}

	fields := map[string]interface{}{
		"name":      req.Name,
		"role":      req.Role,
		"updatedAt": time.Now().UnixMilli(),
		"updatedBy": actorID,
	}
	if err := s.userRepo.UpdateFields(ctx, uid, fields); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.NewNotFoundError("User not found")
		}
		return domain.NewInternalError("failed to update user", err)
	}

	logger.Get().Info("User updated", zap.String("uid", uid), zap.String("updatedBy", actorID))
	return nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, uid string) error {
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return domain.NewInternalError("failed to delete user", err)
	}

	// The profile removal is what the admin observes; a stale provider
	// account only blocks re-registration of the email.
	if err := s.provider.DeleteAccount(ctx, uid); err != nil {
		logger.Get().Warn("Failed to delete auth account for removed user",
			zap.String("uid", uid), zap.Error(err))
	}

	logger.Get().Info("User deleted", zap.String("uid", uid))
	return nil
}
