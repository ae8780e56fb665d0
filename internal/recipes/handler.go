package recipes

import (
	"errors"
	"fmt"

	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type IngredientRequest struct {
	InventoryItemID uint    `json:"inventory_item_id"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
	Unit            string  `json:"unit"`
}

type UpsertRecipeRequest struct {
	Ingredients []IngredientRequest `json:"ingredients"`
}

type IngredientResponse struct {
	InventoryItemID uint    `json:"inventory_item_id"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
	Unit            string  `json:"unit"`
}

type RecipeResponse struct {
	MenuItemID  uint                 `json:"menu_item_id"`
	Ingredients []IngredientResponse `json:"ingredients"`
	UpdatedAt   string               `json:"updated_at"`
}

func toRecipeResponse(recipe *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		MenuItemID:  recipe.MenuItemID,
		Ingredients: make([]IngredientResponse, 0, len(recipe.Ingredients)),
		UpdatedAt:   recipe.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, ing := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			InventoryItemID: ing.InventoryItemID,
			QuantityPerUnit: ing.QuantityPerUnit,
			Unit:            ing.Unit,
		})
	}
	return resp
}

func parseMenuItemID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("menuItemId"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "menuItemId geçersiz")
	}
	return id, nil
}

// GET /api/recipes/:menuItemId
func GetRecipeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		menuItemID, err := parseMenuItemID(c)
		if err != nil {
			return err
		}

		recipe, err := svc.Get(menuItemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Reçete alınamadı")
		}

		return c.JSON(toRecipeResponse(recipe))
	}
}

// PUT /api/recipes/:menuItemId
func UpsertRecipeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		menuItemID, err := parseMenuItemID(c)
		if err != nil {
			return err
		}

		var body UpsertRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		ingredients := make([]IngredientInput, 0, len(body.Ingredients))
		for _, ing := range body.Ingredients {
			ingredients = append(ingredients, IngredientInput{
				InventoryItemID: ing.InventoryItemID,
				QuantityPerUnit: ing.QuantityPerUnit,
				Unit:            ing.Unit,
			})
		}

		recipe, err := svc.Upsert(menuItemID, ingredients)
		if err != nil {
			if errors.Is(err, ErrInvalidRecipe) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Reçete kaydedilemedi")
		}

		return c.JSON(toRecipeResponse(recipe))
	}
}
