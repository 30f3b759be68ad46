package models

import "time"

type ScanType string

const (
	ScanTypeQR      ScanType = "qr"
	ScanTypeBarcode ScanType = "barcode"
	ScanTypeManual  ScanType = "manual"
)

type ScanAction string

const (
	ScanActionSearch   ScanAction = "search"
	ScanActionUpdate   ScanAction = "update"
	ScanActionCheckIn  ScanAction = "check_in"
	ScanActionCheckOut ScanAction = "check_out"
)

// ScanLog records every QR/barcode-driven lookup or update. Append-only,
// removed only when the parent item is deleted.
type ScanLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ItemID    uint       `gorm:"index;not null" json:"itemId"`
	Article   string     `gorm:"size:255" json:"article"`
	ScanType  ScanType   `gorm:"size:20;not null;default:qr" json:"scanType"`
	ScanData  string     `gorm:"type:text" json:"scanData"`
	Action    ScanAction `gorm:"size:20" json:"action"`
	Result    string     `gorm:"type:text" json:"result"`
	ScannedBy string     `gorm:"size:100;not null;default:System" json:"scannedBy"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
}
