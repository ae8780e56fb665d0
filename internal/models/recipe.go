package models

import "time"

// Recipe: Bir menü ürününün reçetesi (bir porsiyon için malzeme listesi)
// Menü ürünü başına en fazla bir reçete olabilir.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	MenuItemID  uint               `gorm:"uniqueIndex;not null" json:"menu_item_id"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecipeIngredient: Reçetedeki tek malzeme satırı
type RecipeIngredient struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	RecipeID        uint    `gorm:"index;not null" json:"recipe_id"`
	InventoryItemID uint    `gorm:"index;not null" json:"inventory_item_id"`
	QuantityPerUnit float64 `gorm:"not null" json:"quantity_per_unit"` // bir porsiyon için miktar
	Unit            string  `gorm:"size:20;not null" json:"unit"`
	Position        int     `gorm:"not null;default:0" json:"position"` // reçetedeki sıra
}
