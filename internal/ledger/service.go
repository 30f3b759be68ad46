// Package ledger is the single authoritative path for changing an item's
// stock quantity. Every change pairs the item update with exactly one
// immutable QtyHistory row inside one transaction, and quantity never goes
// negative.
package ledger

import (
	"fmt"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ChangeRequest is either a signed adjustment or an absolute target quantity.
// Exactly one of Adjustment and Target must be set; Target wins if both are.
type ChangeRequest struct {
	Adjustment *int
	Target     *int
	ChangeType models.ChangeType // optional, overrides the path default
	Notes      string            // optional, overrides the generated note
}

type Result struct {
	Item    *models.Item
	History *models.QtyHistory
}

// changeTypeFunc resolves the default change type from the computed delta.
// The detail-update and QR paths supply different defaults.
type changeTypeFunc func(changeAmount int, adjustmentMode bool) models.ChangeType

func detailChangeType(changeAmount int, adjustmentMode bool) models.ChangeType {
	if adjustmentMode {
		return models.ChangeAdjustment
	}
	return models.ChangeManual
}

func qrChangeType(changeAmount int, adjustmentMode bool) models.ChangeType {
	switch {
	case changeAmount > 0:
		return models.ChangeInbound
	case changeAmount < 0:
		return models.ChangeOutbound
	default:
		return models.ChangeQRScan
	}
}

// lockItem loads the item with a row lock so concurrent changes to the same
// item serialize. SQLite (used by tests) has no FOR UPDATE and serializes
// writers on its own.
func lockItem(tx *gorm.DB, itemID uint) (*models.Item, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item models.Item
	if err := q.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, err
	}
	return &item, nil
}

// apply runs the core algorithm inside the caller's transaction: validate the
// request, compute the new quantity, write the item and the history row.
// Nothing is written if any check fails.
func (s *Service) apply(tx *gorm.DB, id access.Identity, itemID uint, req ChangeRequest, resolve changeTypeFunc, noteFor func(old, newQty int, adjustmentMode bool) string) (*Result, error) {
	item, err := lockItem(tx, itemID)
	if err != nil {
		return nil, err
	}

	if !access.CanAdjustQty(id, item) {
		return nil, fmt.Errorf("%w: item %d is outside your category", apperr.ErrPermissionDenied, itemID)
	}

	oldQty := item.Qty
	var newQty int
	adjustmentMode := false

	switch {
	case req.Target != nil:
		if *req.Target < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", apperr.ErrValidation)
		}
		newQty = *req.Target
	case req.Adjustment != nil:
		if *req.Adjustment == 0 {
			return nil, fmt.Errorf("%w: adjustment must be nonzero", apperr.ErrValidation)
		}
		adjustmentMode = true
		newQty = oldQty + *req.Adjustment
	default:
		return nil, fmt.Errorf("%w: either newQty or adjustment is required", apperr.ErrValidation)
	}

	if newQty < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperr.ErrValidation)
	}

	changeAmount := newQty - oldQty

	changeType := req.ChangeType
	if changeType == "" {
		changeType = resolve(changeAmount, adjustmentMode)
	}

	notes := req.Notes
	if notes == "" {
		notes = noteFor(oldQty, newQty, adjustmentMode)
	}

	if err := tx.Model(item).Update("qty", newQty).Error; err != nil {
		return nil, err
	}

	history := models.QtyHistory{
		ItemID:       item.ID,
		Article:      item.Article,
		OldQty:       oldQty,
		NewQty:       newQty,
		ChangeAmount: changeAmount,
		ChangeType:   changeType,
		Notes:        notes,
		UpdatedBy:    id.Username,
	}
	if err := tx.Create(&history).Error; err != nil {
		return nil, err
	}

	return &Result{Item: item, History: &history}, nil
}

func detailNote(old, newQty int, adjustmentMode bool) string {
	if adjustmentMode {
		return fmt.Sprintf("Adjusted by %+d", newQty-old)
	}
	return fmt.Sprintf("Updated from %d to %d", old, newQty)
}

func qrNote(old, newQty int, adjustmentMode bool) string {
	if adjustmentMode {
		return fmt.Sprintf("QR Scan Update: Adjusted by %+d", newQty-old)
	}
	return fmt.Sprintf("QR Scan Update: Set to %d", newQty)
}

// ApplyDetailUpdateTx is the detail-update entry point running inside an
// existing transaction. Default change type: adjustment for deltas, manual
// for absolute sets.
func (s *Service) ApplyDetailUpdateTx(tx *gorm.DB, id access.Identity, itemID uint, req ChangeRequest) (*Result, error) {
	return s.apply(tx, id, itemID, req, detailChangeType, detailNote)
}

// ApplyDetailUpdate runs ApplyDetailUpdateTx in its own transaction.
func (s *Service) ApplyDetailUpdate(id access.Identity, itemID uint, req ChangeRequest) (*Result, error) {
	var res *Result
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		res, txErr = s.ApplyDetailUpdateTx(tx, id, itemID, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyQrUpdateTx is the QR quick-update entry point running inside an
// existing transaction. Default change type follows the sign of the change:
// inbound for positive, outbound for negative, qr_scan when nothing moved.
func (s *Service) ApplyQrUpdateTx(tx *gorm.DB, id access.Identity, itemID uint, req ChangeRequest) (*Result, error) {
	return s.apply(tx, id, itemID, req, qrChangeType, qrNote)
}

// ApplyQrUpdate runs ApplyQrUpdateTx in its own transaction.
func (s *Service) ApplyQrUpdate(id access.Identity, itemID uint, req ChangeRequest) (*Result, error) {
	var res *Result
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		res, txErr = s.ApplyQrUpdateTx(tx, id, itemID, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
