package models

import "time"

type ChangeType string

const (
	ChangeManual     ChangeType = "manual"
	ChangeAdjustment ChangeType = "adjustment"
	ChangeInbound    ChangeType = "inbound"
	ChangeOutbound   ChangeType = "outbound"
	ChangeCorrection ChangeType = "correction"
	ChangeQRScan     ChangeType = "qr_scan"
)

// QtyHistory is the audit trail for stock changes. Rows are append-only and
// pair 1:1 with every qty mutation; NewQty = OldQty + ChangeAmount always
// holds. Article is a snapshot of the item name at change time, kept even if
// the item is later renamed.
type QtyHistory struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ItemID       uint       `gorm:"index;not null" json:"itemId"`
	Article      string     `gorm:"size:255;not null" json:"article"`
	OldQty       int        `gorm:"not null" json:"oldQty"`
	NewQty       int        `gorm:"not null" json:"newQty"`
	ChangeAmount int        `gorm:"not null" json:"changeAmount"`
	ChangeType   ChangeType `gorm:"size:20;not null;default:manual" json:"changeType"`
	Notes        string     `gorm:"type:text" json:"notes"`
	UpdatedBy    string     `gorm:"size:100;not null;default:System" json:"updatedBy"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
}
