package alerts

import (
	"errors"
	"fmt"
	"time"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service: Düşük stok uyarılarının yaşam döngüsü. Uyarılar sadece düşüm motoru
// tarafından oluşturulur ve sadece elle kapatılır.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RegisterIfAbsent: Malzeme için aktif uyarı yoksa yenisini oluşturur, varsa
// hiçbir şey yapmaz ve nil döner. Kontrol, stok düşümüyle aynı transaction
// içinde, o anki commit edilmiş uyarı kümesine karşı yapılır — batch başında
// alınmış bir snapshot'a karşı DEĞİL. İki eşzamanlı sipariş aynı malzeme için
// iki uyarı üretemez, çünkü satır kilidi commit'e kadar elde tutulur.
//
// Aktif uyarı varken severity yükselse bile (warning aralığından negatife
// düşüş) mevcut uyarı yükseltilmez; yeni uyarı ancak dismiss sonrası doğar.
func RegisterIfAbsent(tx *gorm.DB, item models.InventoryItem, newStock float64) (*models.StockAlert, error) {
	var active int64
	err := tx.Model(&models.StockAlert{}).
		Where("inventory_item_id = ? AND dismissed = ?", item.ID, false).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active > 0 {
		// Zaten aktif uyarı var; mükerrer kayıt sessiz no-op
		return nil, nil
	}

	severity := models.SeverityWarning
	message := fmt.Sprintf("%s stoğu minimum seviyenin altında: %.2f %s kaldı", item.Name, newStock, item.Unit)
	if newStock <= 0 {
		severity = models.SeverityCritical
		message = fmt.Sprintf("%s stoğu tükendi: %.2f %s kaldı", item.Name, newStock, item.Unit)
	}

	alert := models.StockAlert{
		ID:              uuid.NewString(),
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		CurrentStock:    newStock,
		MinimumStock:    item.MinimumStock,
		Severity:        severity,
		Message:         message,
	}

	if err := tx.Create(&alert).Error; err != nil {
		return nil, err
	}

	return &alert, nil
}

// Dismiss: Uyarıyı kapatır. Kapatılan uyarı aktif kümeden çıkar; aynı malzeme
// için bir sonraki eşik geçişi yeni uyarı oluşturabilir. Zaten kapalıysa no-op.
func (s *Service) Dismiss(alertID string) (*models.StockAlert, error) {
	var alert models.StockAlert
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, "id = ?", alertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if alert.Dismissed {
			return nil
		}

		now := time.Now()
		alert.Dismissed = true
		alert.DismissedAt = &now
		if err := tx.Save(&alert).Error; err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  "stock_alert",
			EntityID:    alert.ID,
			Action:      models.AuditActionDismiss,
			Description: fmt.Sprintf("Stok uyarısı kapatıldı: %s", alert.ItemName),
			After:       alert,
		})
	})
	if err != nil {
		return nil, err
	}

	return &alert, nil
}

// ListActive: Kapatılmamış uyarılar, en yeni önce
func (s *Service) ListActive() ([]models.StockAlert, error) {
	var list []models.StockAlert
	if err := s.db.Where("dismissed = ?", false).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) ListAll() ([]models.StockAlert, error) {
	var list []models.StockAlert
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
