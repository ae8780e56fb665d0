package deduction

import (
	"github.com/gofiber/fiber/v2"
)

type ApplyRequest struct {
	Lines []OrderLine `json:"lines"`
}

// POST /api/orders/deduct
// Sipariş servisi ödeme onayından sonra çağırır; dönen liste bu siparişin
// tetiklediği yeni stok uyarılarıdır.
func ApplyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ApplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Lines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir sipariş satırı gerekli")
		}
		for _, line := range body.Lines {
			if line.MenuItemID == 0 || line.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş satırında menü ürün ID ve pozitif adet zorunlu")
			}
		}

		created, err := svc.Apply(body.Lines)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok düşümü yapılamadı")
		}

		return c.JSON(fiber.Map{
			"created_alerts": created,
		})
	}
}
