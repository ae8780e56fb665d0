package models

import "time"

type ItemCategory string

const (
	CategoryMeat      ItemCategory = "meat"
	CategoryVegetable ItemCategory = "vegetable"
	CategoryDairy     ItemCategory = "dairy"
	CategoryBakery    ItemCategory = "bakery"
	CategoryBeverage  ItemCategory = "beverage"
	CategorySpice     ItemCategory = "spice"
	CategoryPackaging ItemCategory = "packaging"
	CategoryOther     ItemCategory = "other"
)

// ValidCategory: Kategori sabit listede mi kontrol et
func ValidCategory(c ItemCategory) bool {
	switch c {
	case CategoryMeat, CategoryVegetable, CategoryDairy, CategoryBakery,
		CategoryBeverage, CategorySpice, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// InventoryItem: Mutfak stok kaydı (malzeme bazında)
type InventoryItem struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"size:100;not null" json:"name"`
	Category        ItemCategory `gorm:"size:30;not null;index" json:"category"`
	Unit            string       `gorm:"size:20;not null" json:"unit"` // kg, adet, lt vs.
	CurrentStock    float64      `gorm:"not null" json:"current_stock"` // negatif olabilir (fazla satış durumu)
	MinimumStock    float64      `gorm:"not null" json:"minimum_stock"`
	UnitCost        float64      `gorm:"not null" json:"unit_cost"`
	Supplier        string       `gorm:"size:100" json:"supplier"`
	LastRestockedAt time.Time    `gorm:"not null" json:"last_restocked_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
