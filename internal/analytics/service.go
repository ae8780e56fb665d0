package analytics

import (
	"sort"

	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

// CategoryBreakdown: Tek kategorinin özet satırı
type CategoryBreakdown struct {
	Category   models.ItemCategory `json:"category"`
	ItemCount  int                 `json:"item_count"`
	TotalValue float64             `json:"total_value"`
}

// Snapshot: Stok defterinin o anki özeti. Her çağrıda taze hesaplanır,
// mutasyonlar arasında cache tutulmaz.
type Snapshot struct {
	TotalItems        int                 `json:"total_items"`
	LowStockCount     int                 `json:"low_stock_count"`
	TotalValue        float64             `json:"total_value"` // fazla satış varsa negatif olabilir
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
}

// Service: Stok defteri üzerinde salt-okunur projeksiyon
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Compute: Toplam kayıt, düşük stok sayısı, toplam değer (stok * birim maliyet)
// ve kategori bazında kırılım. Değer hesabı tabanlanmaz; negatif stok negatif
// değer üretir ve raporda öyle görünür.
func (s *Service) Compute() (*Snapshot, error) {
	var items []models.InventoryItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		TotalItems:        len(items),
		CategoryBreakdown: make([]CategoryBreakdown, 0),
	}

	byCategory := make(map[models.ItemCategory]*CategoryBreakdown)
	for _, item := range items {
		value := item.CurrentStock * item.UnitCost
		snapshot.TotalValue += value

		if item.CurrentStock <= item.MinimumStock {
			snapshot.LowStockCount++
		}

		entry, ok := byCategory[item.Category]
		if !ok {
			entry = &CategoryBreakdown{Category: item.Category}
			byCategory[item.Category] = entry
		}
		entry.ItemCount++
		entry.TotalValue += value
	}

	for _, entry := range byCategory {
		snapshot.CategoryBreakdown = append(snapshot.CategoryBreakdown, *entry)
	}
	sort.Slice(snapshot.CategoryBreakdown, func(i, j int) bool {
		return snapshot.CategoryBreakdown[i].Category < snapshot.CategoryBreakdown[j].Category
	})

	return snapshot, nil
}
