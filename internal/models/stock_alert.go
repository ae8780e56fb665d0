package models

import "time"

type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"  // stok minimum seviyenin altında
	SeverityCritical AlertSeverity = "critical" // stok sıfır veya negatif
)

// StockAlert: Düşük stok uyarısı. Malzeme başına aynı anda en fazla bir aktif
// (dismissed=false) uyarı bulunabilir; uyarı ancak elle kapatılır, kendiliğinden
// düşmez.
type StockAlert struct {
	ID              string        `gorm:"primaryKey;size:36" json:"id"`
	InventoryItemID uint          `gorm:"index;not null" json:"inventory_item_id"`
	ItemName        string        `gorm:"size:100;not null" json:"item_name"` // uyarı anındaki ürün adı (denormalize)
	CurrentStock    float64       `gorm:"not null" json:"current_stock"`      // uyarı anındaki stok
	MinimumStock    float64       `gorm:"not null" json:"minimum_stock"`
	Severity        AlertSeverity `gorm:"size:20;not null" json:"severity"`
	Message         string        `gorm:"size:255;not null" json:"message"`
	Dismissed       bool          `gorm:"not null;default:false;index" json:"dismissed"`
	DismissedAt     *time.Time    `json:"dismissed_at"`
	CreatedAt       time.Time     `json:"created_at"`
}
