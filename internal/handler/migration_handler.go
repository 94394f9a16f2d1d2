package handler

import (
	"quiz-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MigrationHandler struct {
	migrationService service.MigrationService
}

func NewMigrationHandler(migrationService service.MigrationService) *MigrationHandler {
	return &MigrationHandler{migrationService: migrationService}
}

// Check reports which profile documents need re-keying. Safe to call
// repeatedly.
func (h *MigrationHandler) Check(c *fiber.Ctx) error {
	return c.JSON(h.migrationService.CheckMigrationNeeded(c.Context()))
}

// Run executes the repair and reports per-document failures.
func (h *MigrationHandler) Run(c *fiber.Ctx) error {
	return c.JSON(h.migrationService.MigrateUsers(c.Context()))
}
