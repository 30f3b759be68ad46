package models

import "time"

// Item: satu SKU di gudang. JSON field names follow the legacy API so the
// existing frontend and printed labels keep working.
type Item struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Article    string    `gorm:"size:255;not null" json:"article"`
	Komponen   string    `gorm:"size:255;not null" json:"komponen"`
	NoPo       string    `gorm:"size:100" json:"noPo"`
	OrderQty   int       `gorm:"column:order_qty;not null;default:0" json:"order"`
	Qty        int       `gorm:"not null;default:0" json:"qty"`
	Kolom      string    `gorm:"size:50;index" json:"kolom"` // rak/kolom location code
	MinStock   int       `gorm:"not null;default:10" json:"minStock"`
	CategoryID *uint     `gorm:"index" json:"categoryId"`
	Category   *Category `json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LowStock reports whether current stock is at or below the minimum.
func (i *Item) LowStock() bool {
	return i.Qty <= i.MinStock
}
