package recipes

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

// Service: Reçete kayıt defteri. Menü ürünü başına tek reçete tutar;
// sipariş akışından yazılmaz, sadece menü yönetimi tarafından değiştirilir.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type IngredientInput struct {
	InventoryItemID uint
	QuantityPerUnit float64
	Unit            string
}

// Get: Reçeteyi malzemeleriyle birlikte, reçetedeki sırayla döner.
func (s *Service) Get(menuItemID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("menu_item_id = ?", menuItemID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Upsert: Menü ürününün reçetesini komple değiştirir (merge değil).
// Malzeme referansları yazma anında var olmak zorunda; sonradan silinen
// malzemeyi düşüm motoru zaten sessizce atlar.
func (s *Service) Upsert(menuItemID uint, ingredients []IngredientInput) (*models.Recipe, error) {
	if menuItemID == 0 {
		return nil, fmt.Errorf("%w: menü ürün ID zorunlu", ErrInvalidRecipe)
	}

	for i, ing := range ingredients {
		if ing.InventoryItemID == 0 {
			return nil, fmt.Errorf("%w: %d. satırda malzeme ID eksik", ErrInvalidRecipe, i+1)
		}
		if math.IsNaN(ing.QuantityPerUnit) || math.IsInf(ing.QuantityPerUnit, 0) || ing.QuantityPerUnit <= 0 {
			return nil, fmt.Errorf("%w: %d. satırda miktar pozitif olmalı", ErrInvalidRecipe, i+1)
		}
		if strings.TrimSpace(ing.Unit) == "" {
			return nil, fmt.Errorf("%w: %d. satırda birim eksik", ErrInvalidRecipe, i+1)
		}
	}

	var recipe models.Recipe
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Tüm malzeme referansları yazma anında mevcut olmalı
		for i, ing := range ingredients {
			var count int64
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", ing.InventoryItemID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %d. satırdaki malzeme bulunamadı (ID: %d)", ErrInvalidRecipe, i+1, ing.InventoryItemID)
			}
		}

		action := models.AuditActionCreate
		err := tx.Where("menu_item_id = ?", menuItemID).First(&recipe).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			recipe = models.Recipe{MenuItemID: menuItemID}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
		} else {
			action = models.AuditActionUpdate
			// Eski malzeme listesi komple gider, yenisi yazılır
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Save(&recipe).Error; err != nil {
				return err
			}
		}

		rows := make([]models.RecipeIngredient, 0, len(ingredients))
		for i, ing := range ingredients {
			rows = append(rows, models.RecipeIngredient{
				RecipeID:        recipe.ID,
				InventoryItemID: ing.InventoryItemID,
				QuantityPerUnit: ing.QuantityPerUnit,
				Unit:            strings.TrimSpace(ing.Unit),
				Position:        i,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		recipe.Ingredients = rows

		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "recipe",
			EntityID:    fmt.Sprint(recipe.ID),
			Action:      action,
			Description: fmt.Sprintf("Reçete kaydedildi: menü ürün %d, %d malzeme", menuItemID, len(rows)),
			After:       recipe,
		})
	})
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// StripIngredient: Silinen malzemenin tüm reçetelerdeki satırlarını temizler.
// InventoryLedger.Delete kendi transaction'ı içinden çağırır; inventory_item_id
// index'i üzerinden çalışır, reçete taraması yapılmaz.
func StripIngredient(tx *gorm.DB, inventoryItemID uint) error {
	return tx.Where("inventory_item_id = ?", inventoryItemID).Delete(&models.RecipeIngredient{}).Error
}
