// Package inventory owns item master data. Quantity changes go through the
// ledger so every stock movement leaves a history row.
package inventory

import (
	"fmt"
	"strings"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/ledger"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Service
}

func NewService(db *gorm.DB, lg *ledger.Service) *Service {
	return &Service{DB: db, Ledger: lg}
}

type ItemDraft struct {
	Article    string
	Komponen   string
	NoPo       string
	OrderQty   int
	Qty        int
	Kolom      string
	MinStock   *int // nil = default 10
	CategoryID *uint
}

// Create validates and persists a new item. Staff always create into their
// own category: any caller-supplied category is silently replaced, matching
// the legacy behavior the frontend relies on. A starting quantity writes an
// initial inbound history row in the same transaction.
func (s *Service) Create(id access.Identity, draft ItemDraft) (*models.Item, error) {
	if id.Role == models.RoleStaff {
		draft.CategoryID = id.CategoryID
	}
	if !access.CanWrite(id, draft.CategoryID) {
		return nil, fmt.Errorf("%w: your role cannot create items", apperr.ErrPermissionDenied)
	}

	draft.Article = strings.TrimSpace(draft.Article)
	draft.Komponen = strings.TrimSpace(draft.Komponen)
	if draft.Article == "" {
		return nil, fmt.Errorf("%w: article is required", apperr.ErrValidation)
	}
	if draft.Komponen == "" {
		return nil, fmt.Errorf("%w: komponen is required", apperr.ErrValidation)
	}
	if draft.Qty < 0 {
		return nil, fmt.Errorf("%w: qty cannot be negative", apperr.ErrValidation)
	}
	if draft.OrderQty < 0 {
		return nil, fmt.Errorf("%w: order cannot be negative", apperr.ErrValidation)
	}

	minStock := 10
	if draft.MinStock != nil {
		if *draft.MinStock < 0 {
			return nil, fmt.Errorf("%w: minStock cannot be negative", apperr.ErrValidation)
		}
		minStock = *draft.MinStock
	}

	if draft.CategoryID != nil {
		var count int64
		s.DB.Model(&models.Category{}).Where("id = ?", *draft.CategoryID).Count(&count)
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d does not exist", apperr.ErrValidation, *draft.CategoryID)
		}
	}

	item := models.Item{
		Article:    draft.Article,
		Komponen:   draft.Komponen,
		NoPo:       strings.TrimSpace(draft.NoPo),
		OrderQty:   draft.OrderQty,
		Qty:        draft.Qty,
		Kolom:      strings.TrimSpace(draft.Kolom),
		MinStock:   minStock,
		CategoryID: draft.CategoryID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if item.Qty > 0 {
			history := models.QtyHistory{
				ItemID:       item.ID,
				Article:      item.Article,
				OldQty:       0,
				NewQty:       item.Qty,
				ChangeAmount: item.Qty,
				ChangeType:   models.ChangeInbound,
				Notes:        "Initial stock creation",
				UpdatedBy:    id.Username,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type ItemPatch struct {
	Article     *string
	Komponen    *string
	NoPo        *string
	OrderQty    *int
	Qty         *int
	Kolom       *string
	MinStock    *int
	CategoryID  *uint
	ChangeType  models.ChangeType // classification for a qty change
	ChangeNotes string
}

// Update applies the patch. A quantity change is delegated to the ledger
// inside the same transaction as the field updates, so both commit or
// neither does. Re-categorizing an item is admin-only.
func (s *Service) Update(id access.Identity, itemID uint, patch ItemPatch) (*models.Item, error) {
	var item models.Item
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, err
	}

	if !access.CanWrite(id, item.CategoryID) {
		return nil, fmt.Errorf("%w: item %d is outside your category", apperr.ErrPermissionDenied, itemID)
	}

	if patch.CategoryID != nil && !sameCategoryID(patch.CategoryID, item.CategoryID) {
		if !id.IsAdmin() {
			return nil, fmt.Errorf("%w: only admin may change an item's category", apperr.ErrPermissionDenied)
		}
		var count int64
		s.DB.Model(&models.Category{}).Where("id = ?", *patch.CategoryID).Count(&count)
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d does not exist", apperr.ErrValidation, *patch.CategoryID)
		}
	}

	updates := map[string]interface{}{}
	if patch.Article != nil {
		v := strings.TrimSpace(*patch.Article)
		if v == "" {
			return nil, fmt.Errorf("%w: article is required", apperr.ErrValidation)
		}
		updates["article"] = v
	}
	if patch.Komponen != nil {
		v := strings.TrimSpace(*patch.Komponen)
		if v == "" {
			return nil, fmt.Errorf("%w: komponen is required", apperr.ErrValidation)
		}
		updates["komponen"] = v
	}
	if patch.NoPo != nil {
		updates["no_po"] = strings.TrimSpace(*patch.NoPo)
	}
	if patch.Kolom != nil {
		updates["kolom"] = strings.TrimSpace(*patch.Kolom)
	}
	if patch.OrderQty != nil {
		if *patch.OrderQty < 0 {
			return nil, fmt.Errorf("%w: order cannot be negative", apperr.ErrValidation)
		}
		updates["order_qty"] = *patch.OrderQty
	}
	if patch.MinStock != nil {
		if *patch.MinStock < 0 {
			return nil, fmt.Errorf("%w: minStock cannot be negative", apperr.ErrValidation)
		}
		updates["min_stock"] = *patch.MinStock
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.Qty != nil && *patch.Qty != item.Qty {
			res, err := s.Ledger.ApplyDetailUpdateTx(tx, id, item.ID, ledger.ChangeRequest{
				Target:     patch.Qty,
				ChangeType: patch.ChangeType,
				Notes:      patch.ChangeNotes,
			})
			if err != nil {
				return err
			}
			item.Qty = res.Item.Qty
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees exactly what was committed.
	if err := s.DB.Preload("Category").First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item and its history and scan trail. Reserved to admin
// globally, regardless of category. A final outbound history row records the
// zeroing-out before the cascade removes everything in one transaction.
func (s *Service) Delete(id access.Identity, itemID uint) error {
	if !id.IsAdmin() {
		return fmt.Errorf("%w: only admin may delete items", apperr.ErrPermissionDenied)
	}

	var item models.Item
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		final := models.QtyHistory{
			ItemID:       item.ID,
			Article:      item.Article,
			OldQty:       item.Qty,
			NewQty:       0,
			ChangeAmount: -item.Qty,
			ChangeType:   models.ChangeOutbound,
			Notes:        "Item deleted from system",
			UpdatedBy:    id.Username,
		}
		if err := tx.Create(&final).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ScanLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.QtyHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// Get loads one item. Out-of-scope items report as not found so existence
// never leaks across category boundaries.
func (s *Service) Get(id access.Identity, itemID uint) (*models.Item, error) {
	var item models.Item
	if err := s.DB.Preload("Category").First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, err
	}
	if !access.CanRead(id, &item) {
		return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
	}
	return &item, nil
}

func sameCategoryID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
