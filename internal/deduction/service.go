package deduction

import (
	"errors"
	"fmt"
	"log"

	"stoktakip-backend/internal/alerts"
	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

// OrderLine: Tamamlanmış siparişin tek satırı. Sipariş servisi ödeme
// onayından SONRA gönderir, öncesinde asla.
type OrderLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// Service: Sipariş satırlarını reçeteler üzerinden malzeme tüketimine çevirir
// ve stok defterine işler. Sipariş akışını asla bloke etmez: reçetesi olmayan
// ürünler (ör. sabit fiyatlı içecek) ve silinmiş malzeme referansları hata
// üretmeden atlanır, sadece denetim kaydına düşülür.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Apply: Bir siparişin tüm malzeme düşümlerini tek transaction içinde işler.
// Stok sıfırın altına inebilir (fazla satış durumu operatöre görünür kalmalı),
// tabanlama yapılmaz.
//
// Eşik kontrolü: yeni stok <= minimum stok ise ve malzeme için aktif uyarı
// yoksa uyarı oluşturulur. Uyarı kontrolü her düşümün hemen ardından, aynı
// transaction içinde güncel uyarı kümesine karşı yapılır; batch başında okunan
// liste kullanılmaz. Oluşturulan uyarılar çağırana döner.
func (s *Service) Apply(lines []OrderLine) ([]models.StockAlert, error) {
	created := make([]models.StockAlert, 0)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			if line.Quantity <= 0 {
				// HTTP katmanı zaten reddediyor; doğrudan çağıran bozuk satırla
				// stok şişiremesin
				continue
			}

			var recipe models.Recipe
			err := tx.
				Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
					return db.Order("position ASC")
				}).
				Where("menu_item_id = ?", line.MenuItemID).
				First(&recipe).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Reçetesiz menü ürünü: stok takibi yok, satır atlanır
					log.Printf("Düşüm: menü ürün %d için reçete yok, satır atlandı", line.MenuItemID)
					if logErr := auditSkip(tx, fmt.Sprint(line.MenuItemID),
						fmt.Sprintf("Reçete bulunamadı, sipariş satırı atlandı (menü ürün %d, adet %d)", line.MenuItemID, line.Quantity)); logErr != nil {
						return logErr
					}
					continue
				}
				return err
			}

			for _, ing := range recipe.Ingredients {
				consumed := ing.QuantityPerUnit * float64(line.Quantity)

				// Atomik düşüm: satır kilidi commit'e kadar kalır, eşzamanlı
				// Apply/Restock çağrıları yazma kaybedemez
				res := tx.Model(&models.InventoryItem{}).
					Where("id = ?", ing.InventoryItemID).
					Update("current_stock", gorm.Expr("current_stock - ?", consumed))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					// Reçete yazıldıktan sonra silinmiş malzeme: sessiz atla
					log.Printf("Düşüm: malzeme %d bulunamadı (silinmiş referans), atlandı", ing.InventoryItemID)
					if logErr := auditSkip(tx, fmt.Sprint(ing.InventoryItemID),
						fmt.Sprintf("Malzeme bulunamadı (ID: %d), reçete satırı atlandı", ing.InventoryItemID)); logErr != nil {
						return logErr
					}
					continue
				}

				var item models.InventoryItem
				if err := tx.First(&item, "id = ?", ing.InventoryItemID).Error; err != nil {
					return err
				}

				if logErr := audit.WriteLog(tx, audit.LogOptions{
					EntityType:  "inventory_item",
					EntityID:    fmt.Sprint(item.ID),
					Action:      models.AuditActionDeduct,
					Description: fmt.Sprintf("Sipariş düşümü: %s -%.2f %s (kalan: %.2f)", item.Name, consumed, item.Unit, item.CurrentStock),
					After:       item,
				}); logErr != nil {
					return logErr
				}

				if item.CurrentStock <= item.MinimumStock {
					alert, err := alerts.RegisterIfAbsent(tx, item, item.CurrentStock)
					if err != nil {
						return err
					}
					if alert != nil {
						created = append(created, *alert)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func auditSkip(tx *gorm.DB, entityID, description string) error {
	return audit.WriteLog(tx, audit.LogOptions{
		EntityType:  "deduction",
		EntityID:    entityID,
		Action:      models.AuditActionSkip,
		Description: description,
	})
}
