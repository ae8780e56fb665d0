package inventory

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/recipes"

	"gorm.io/gorm"
)

// Service: Stok defteri. Tüm yazma işlemleri bu servis üzerinden geçer;
// eşzamanlı sipariş düşümleri ve restock'lar kaybolan yazma üretmesin diye
// stok değişimleri atomik UPDATE ile yapılır.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ItemInput struct {
	Name         string
	Category     models.ItemCategory
	Unit         string
	CurrentStock float64
	MinimumStock float64
	UnitCost     float64
	Supplier     string
}

type ItemUpdate struct {
	Name         *string
	Category     *models.ItemCategory
	Unit         *string
	CurrentStock *float64
	MinimumStock *float64
	UnitCost     *float64
	Supplier     *string
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Add: Yeni stok kaydı oluşturur. ID veritabanı tarafından atanır,
// son restock tarihi oluşturma anı kabul edilir.
func (s *Service) Add(input ItemInput) (*models.InventoryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Unit = strings.TrimSpace(input.Unit)

	if input.Name == "" {
		return nil, fmt.Errorf("%w: ürün adı zorunlu", ErrInvalidInput)
	}
	if input.Unit == "" {
		return nil, fmt.Errorf("%w: birim zorunlu", ErrInvalidInput)
	}
	if !models.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: kategori geçersiz (%s)", ErrInvalidInput, input.Category)
	}
	if !finite(input.CurrentStock, input.MinimumStock, input.UnitCost) {
		return nil, fmt.Errorf("%w: sayısal alanlar geçerli bir sayı olmalı", ErrInvalidInput)
	}
	if input.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: minimum stok negatif olamaz", ErrInvalidInput)
	}
	if input.UnitCost < 0 {
		return nil, fmt.Errorf("%w: birim maliyet negatif olamaz", ErrInvalidInput)
	}

	item := models.InventoryItem{
		Name:            input.Name,
		Category:        input.Category,
		Unit:            input.Unit,
		CurrentStock:    input.CurrentStock,
		MinimumStock:    input.MinimumStock,
		UnitCost:        input.UnitCost,
		Supplier:        strings.TrimSpace(input.Supplier),
		LastRestockedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "inventory_item",
			EntityID:    fmt.Sprint(item.ID),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stok kaydı eklendi: %s (%.2f %s)", item.Name, item.CurrentStock, item.Unit),
			After:       item,
		})
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Update: Verilen alanları mevcut kayda işler. Kayıt yoksa hata DEĞİL,
// sessiz no-op (nil, nil döner) — kaynak sistemden bilinçli taşınan davranış.
//
// Sadece gövdede gelen kolonlar yazılır. Tüm satırı geri yazmak, araya giren
// bir sipariş düşümünün current_stock değerini eski okumayla ezerdi; gelmeyen
// kolon UPDATE cümlesine hiç girmez.
func (s *Service) Update(id uint, upd ItemUpdate) (*models.InventoryItem, error) {
	fields := make(map[string]any)

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: ürün adı boş olamaz", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if upd.Category != nil {
		if !models.ValidCategory(*upd.Category) {
			return nil, fmt.Errorf("%w: kategori geçersiz (%s)", ErrInvalidInput, *upd.Category)
		}
		fields["category"] = *upd.Category
	}
	if upd.Unit != nil {
		unit := strings.TrimSpace(*upd.Unit)
		if unit == "" {
			return nil, fmt.Errorf("%w: birim boş olamaz", ErrInvalidInput)
		}
		fields["unit"] = unit
	}
	if upd.CurrentStock != nil {
		if !finite(*upd.CurrentStock) {
			return nil, fmt.Errorf("%w: stok miktarı geçerli bir sayı olmalı", ErrInvalidInput)
		}
		fields["current_stock"] = *upd.CurrentStock
	}
	if upd.MinimumStock != nil {
		if !finite(*upd.MinimumStock) || *upd.MinimumStock < 0 {
			return nil, fmt.Errorf("%w: minimum stok negatif olamaz", ErrInvalidInput)
		}
		fields["minimum_stock"] = *upd.MinimumStock
	}
	if upd.UnitCost != nil {
		if !finite(*upd.UnitCost) || *upd.UnitCost < 0 {
			return nil, fmt.Errorf("%w: birim maliyet negatif olamaz", ErrInvalidInput)
		}
		fields["unit_cost"] = *upd.UnitCost
	}
	if upd.Supplier != nil {
		fields["supplier"] = strings.TrimSpace(*upd.Supplier)
	}

	var item models.InventoryItem
	found := true
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		before := item

		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "inventory_item",
			EntityID:    fmt.Sprint(item.ID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stok kaydı güncellendi: %s", item.Name),
			Before:      before,
			After:       item,
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

// Delete: Kaydı siler ve reçetelerdeki tüm referanslarını aynı transaction
// içinde temizler. Reçetenin kendisi silinmez, malzeme listesi boşalsa bile.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := recipes.StripIngredient(tx, id); err != nil {
			return err
		}

		if err := tx.Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "inventory_item",
			EntityID:    fmt.Sprint(id),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Stok kaydı silindi: %s (reçete referansları temizlendi)", item.Name),
			Before:      item,
		})
	})
}

// Restock: Stok girişi. Miktar pozitif olmak zorunda; artış atomik UPDATE ile
// yapılır, eşzamanlı düşümlerle çakışsa bile kayıp yazma oluşmaz.
func (s *Service) Restock(id uint, quantity float64) (*models.InventoryItem, error) {
	if !finite(quantity) || quantity <= 0 {
		return nil, fmt.Errorf("%w: giriş miktarı pozitif olmalı", ErrInvalidInput)
	}

	var item models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"current_stock":     gorm.Expr("current_stock + ?", quantity),
				"last_restocked_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "inventory_item",
			EntityID:    fmt.Sprint(id),
			Action:      models.AuditActionRestock,
			Description: fmt.Sprintf("Stok girişi: %s +%.2f %s (yeni stok: %.2f)", item.Name, quantity, item.Unit, item.CurrentStock),
			After:       item,
		})
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Service) Get(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) List() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListLowStock: Stok seviyesi minimumun altına inmiş (veya eşit) kayıtlar
func (s *Service) ListLowStock() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("current_stock <= minimum_stock").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
