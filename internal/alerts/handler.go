package alerts

import (
	"errors"

	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AlertResponse struct {
	ID              string  `json:"id"`
	InventoryItemID uint    `json:"inventory_item_id"`
	ItemName        string  `json:"item_name"`
	CurrentStock    float64 `json:"current_stock"`
	MinimumStock    float64 `json:"minimum_stock"`
	Severity        string  `json:"severity"`
	Message         string  `json:"message"`
	Dismissed       bool    `json:"dismissed"`
	CreatedAt       string  `json:"created_at"`
}

func toAlertResponse(a *models.StockAlert) AlertResponse {
	return AlertResponse{
		ID:              a.ID,
		InventoryItemID: a.InventoryItemID,
		ItemName:        a.ItemName,
		CurrentStock:    a.CurrentStock,
		MinimumStock:    a.MinimumStock,
		Severity:        string(a.Severity),
		Message:         a.Message,
		Dismissed:       a.Dismissed,
		CreatedAt:       a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toAlertResponses(list []models.StockAlert) []AlertResponse {
	resp := make([]AlertResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toAlertResponse(&list[i]))
	}
	return resp
}

// GET /api/stock-alerts/active
func ListActiveAlertsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListActive()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Uyarılar listelenemedi")
		}
		return c.JSON(toAlertResponses(list))
	}
}

// GET /api/stock-alerts
func ListAllAlertsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Uyarılar listelenemedi")
		}
		return c.JSON(toAlertResponses(list))
	}
}

// POST /api/stock-alerts/:id/dismiss
func DismissAlertHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alertID := c.Params("id")
		if alertID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id zorunlu")
		}

		alert, err := svc.Dismiss(alertID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Stok uyarısı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Uyarı kapatılamadı")
		}

		return c.JSON(toAlertResponse(alert))
	}
}
