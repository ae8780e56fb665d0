package audit

import (
	"fmt"

	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/audit-logs?entity_type=...&limit=...
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if _, err := fmt.Sscan(limitStr, &limit); err != nil || limit < 1 || limit > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz (1-1000 arası olmalı)")
			}
		}

		query := db.Order("created_at DESC, id DESC").Limit(limit)
		if entityType := c.Query("entity_type"); entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}

		var logs []models.AuditLog
		if err := query.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Denetim kayıtları listelenemedi")
		}

		return c.JSON(logs)
	}
}
