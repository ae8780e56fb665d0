package inventory

import (
	"errors"
	"fmt"

	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	MinimumStock float64 `json:"minimum_stock"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier"`
}

type UpdateItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Unit         *string  `json:"unit"`
	CurrentStock *float64 `json:"current_stock"`
	MinimumStock *float64 `json:"minimum_stock"`
	UnitCost     *float64 `json:"unit_cost"`
	Supplier     *string  `json:"supplier"`
}

type RestockRequest struct {
	Quantity float64 `json:"quantity"`
}

type ItemResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Unit            string  `json:"unit"`
	CurrentStock    float64 `json:"current_stock"`
	MinimumStock    float64 `json:"minimum_stock"`
	UnitCost        float64 `json:"unit_cost"`
	Supplier        string  `json:"supplier"`
	LastRestockedAt string  `json:"last_restocked_at"`
	CreatedAt       string  `json:"created_at"`
}

func toItemResponse(item *models.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        string(item.Category),
		Unit:            item.Unit,
		CurrentStock:    item.CurrentStock,
		MinimumStock:    item.MinimumStock,
		UnitCost:        item.UnitCost,
		Supplier:        item.Supplier,
		LastRestockedAt: item.LastRestockedAt.Format("2006-01-02 15:04:05"),
		CreatedAt:       item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func parseItemID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
	}
	return id, nil
}

// POST /api/inventory-items
func CreateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		item, err := svc.Add(ItemInput{
			Name:         body.Name,
			Category:     models.ItemCategory(body.Category),
			Unit:         body.Unit,
			CurrentStock: body.CurrentStock,
			MinimumStock: body.MinimumStock,
			UnitCost:     body.UnitCost,
			Supplier:     body.Supplier,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
	}
}

// GET /api/inventory-items
func ListItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları listelenemedi")
		}

		resp := make([]ItemResponse, 0, len(items))
		for i := range items {
			resp = append(resp, toItemResponse(&items[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/inventory-items/low-stock
func ListLowStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListLowStock()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düşük stok listesi alınamadı")
		}

		resp := make([]ItemResponse, 0, len(items))
		for i := range items {
			resp = append(resp, toItemResponse(&items[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/inventory-items/:id
func GetItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseItemID(c)
		if err != nil {
			return err
		}

		item, err := svc.Get(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydı alınamadı")
		}

		return c.JSON(toItemResponse(item))
	}
}

// PUT /api/inventory-items/:id
func UpdateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseItemID(c)
		if err != nil {
			return err
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		upd := ItemUpdate{
			Name:         body.Name,
			Unit:         body.Unit,
			CurrentStock: body.CurrentStock,
			MinimumStock: body.MinimumStock,
			UnitCost:     body.UnitCost,
			Supplier:     body.Supplier,
		}
		if body.Category != nil {
			cat := models.ItemCategory(*body.Category)
			upd.Category = &cat
		}

		item, err := svc.Update(id, upd)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydı güncellenemedi")
		}
		if item == nil {
			// Kayıt yok: sessiz no-op (bkz. servis dokümantasyonu)
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.JSON(toItemResponse(item))
	}
}

// DELETE /api/inventory-items/:id
func DeleteItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseItemID(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydı silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/inventory-items/:id/restock
func RestockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseItemID(c)
		if err != nil {
			return err
		}

		var body RestockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		item, err := svc.Restock(id, body.Quantity)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok girişi yapılamadı")
		}

		return c.JSON(toItemResponse(item))
	}
}
