package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MigrationService detects and repairs profile documents whose storage key
// diverges from their uid field, a defect left behind by code paths that
// keyed profiles with an auto-generated id instead of the auth uid.
//
// The repair is write-then-delete per document: a crash between the two
// steps leaves a duplicate, never a loss, and a re-run converges.
type MigrationService interface {
	// CheckMigrationNeeded scans the users collection for key/uid
	// mismatches. Read-only and idempotent.
	CheckMigrationNeeded(ctx context.Context) *dto.MigrationCheckResponse
	// MigrateUsers re-scans and repairs each mismatch. Per-document
	// failures are collected; the batch never aborts. Concurrent calls are
	// collapsed into a single run.
	MigrateUsers(ctx context.Context) *dto.MigrationRunResponse
}

type migrationServiceImpl struct {
	userRepo domain.UserRepository
	group    singleflight.Group
}

// NewMigrationService creates a new instance of MigrationService.
func NewMigrationService(userRepo domain.UserRepository) MigrationService {
	return &migrationServiceImpl{userRepo: userRepo}
}

// affectedDoc pairs a mismatched document with the metadata the check
// response reports.
type affectedDoc struct {
	docID string
	uid   string
	email string
	raw   []byte
}

func (s *migrationServiceImpl) scan(ctx context.Context) ([]affectedDoc, error) {
	docs, err := s.userRepo.GetAllRaw(ctx)
	if err != nil {
		return nil, err
	}

	var affected []affectedDoc
	for docID, raw := range docs {
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			logger.Get().Warn("Skipping undecodable user document", zap.String("docId", docID), zap.Error(err))
			continue
		}
		uid, _ := fields["uid"].(string)
		// Documents without a uid field are never flagged; only a present,
		// divergent uid counts as a mismatch.
		if uid == "" || uid == docID {
			continue
		}
		email, _ := fields["email"].(string)
		affected = append(affected, affectedDoc{docID: docID, uid: uid, email: email, raw: raw})
	}

	sort.Slice(affected, func(i, j int) bool { return affected[i].docID < affected[j].docID })
	return affected, nil
}

func (s *migrationServiceImpl) CheckMigrationNeeded(ctx context.Context) *dto.MigrationCheckResponse {
	affected, err := s.scan(ctx)
	if err != nil {
		// The check degrades to "nothing to do"; the error is only logged.
		logger.Get().Error("Error checking migration status", zap.Error(err))
		return &dto.MigrationCheckResponse{Needed: false, Count: 0, Users: []dto.AffectedUser{}}
	}

	users := make([]dto.AffectedUser, 0, len(affected))
	for _, a := range affected {
		users = append(users, dto.AffectedUser{DocID: a.docID, UID: a.uid, Email: a.email})
	}
	return &dto.MigrationCheckResponse{
		Needed: len(users) > 0,
		Count:  len(users),
		Users:  users,
	}
}

func (s *migrationServiceImpl) MigrateUsers(ctx context.Context) *dto.MigrationRunResponse {
	// Two operators clicking "migrate" at once share one run instead of
	// racing create-then-delete on the same documents.
	result, _, _ := s.group.Do("migrate-users", func() (interface{}, error) {
		return s.migrate(ctx), nil
	})
	return result.(*dto.MigrationRunResponse)
}

func (s *migrationServiceImpl) migrate(ctx context.Context) *dto.MigrationRunResponse {
	appLogger := logger.Get()
	resp := &dto.MigrationRunResponse{Errors: []string{}}

	appLogger.Info("Starting user migration")

	// Independent re-scan; there is no shared snapshot with a preceding
	// check call.
	affected, err := s.scan(ctx)
	if err != nil {
		resp.Errors = append(resp.Errors, fmt.Sprintf("Migration failed: %v", err))
		appLogger.Error("User migration failed to scan", zap.Error(err))
		return resp
	}

	appLogger.Info("Found users that need migration", zap.Int("count", len(affected)))

	for _, a := range affected {
		// Write under the correct key first, then delete the old key, so a
		// failure in between duplicates instead of losing the document.
		if err := s.userRepo.SaveRaw(ctx, a.uid, a.raw); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Failed to migrate user %s: %v", a.email, err))
			appLogger.Error("Failed to migrate user", zap.String("email", a.email), zap.Error(err))
			continue
		}
		if err := s.userRepo.Delete(ctx, a.docID); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Failed to migrate user %s: %v", a.email, err))
			appLogger.Error("Failed to delete old user document", zap.String("docId", a.docID), zap.Error(err))
			continue
		}
		resp.MigratedCount++
		appLogger.Info("Migrated user", zap.String("email", a.email), zap.String("uid", a.uid))
	}

	resp.Success = len(resp.Errors) == 0
	appLogger.Info("Migration completed", zap.Int("migratedCount", resp.MigratedCount), zap.Int("errors", len(resp.Errors)))
	return resp
}
