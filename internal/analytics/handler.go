package analytics

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/inventory-analytics
func GetAnalyticsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := svc.Compute()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok analizi hesaplanamadı")
		}
		return c.JSON(snapshot)
	}
}
