// Package scan handles QR/barcode driven lookups and updates, and keeps the
// append-only scan log that feeds the recent-activity views.
package scan

import (
	"fmt"
	"strings"
	"time"

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

// record appends a scan log row. Scan logs are never updated or deleted
// except by the item-delete cascade.
func record(tx *gorm.DB, item *models.Item, scanType models.ScanType, scanData string, action models.ScanAction, result, actor string) error {
	if scanType == "" {
		scanType = models.ScanTypeQR
	}
	entry := models.ScanLog{
		ItemID:    item.ID,
		Article:   item.Article,
		ScanType:  scanType,
		ScanData:  scanData,
		Action:    action,
		Result:    result,
		ScannedBy: actor,
	}
	return tx.Create(&entry).Error
}

// Search resolves a scanned payload to matching items within the caller's
// scope and logs the lookup when anything matched. No match reports as not
// found, same as a direct get on a hidden item.
func (s *Service) Search(id access.Identity, qrData string, scanType models.ScanType) ([]models.Item, error) {
	if strings.TrimSpace(qrData) == "" {
		return nil, fmt.Errorf("%w: QR data is required", apperr.ErrValidation)
	}

	lookup := ParseQRData(qrData)
	q := access.ScopeItems(id, s.DB.Model(&models.Item{}))

	switch {
	case lookup.ItemID != 0:
		q = q.Where("items.id = ?", lookup.ItemID)
	case lookup.ArticleTerm != "":
		q = q.Where("LOWER(article) LIKE ?", "%"+strings.ToLower(lookup.ArticleTerm)+"%")
	default:
		term := "%" + strings.ToLower(lookup.SearchTerm) + "%"
		q = q.Where("LOWER(article) LIKE ? OR LOWER(komponen) LIKE ? OR LOWER(kolom) LIKE ?", term, term, term)
	}

	var items []models.Item
	if err := q.Order("updated_at DESC").Limit(10).Find(&items).Error; err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no item matched the scanned code", apperr.ErrNotFound)
	}

	err := record(s.DB, &items[0], scanType, qrData, models.ScanActionSearch,
		fmt.Sprintf("Found %d items", len(items)), id.Username)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// resolveItemID turns a scanned payload into an item id, using a scoped
// article search when the payload is not an id.
func (s *Service) resolveItemID(id access.Identity, qrData string) (uint, error) {
	lookup := ParseQRData(qrData)
	if lookup.ItemID != 0 {
		return lookup.ItemID, nil
	}

	term := lookup.ArticleTerm
	if term == "" {
		term = lookup.SearchTerm
	}

	var item models.Item
	err := access.ScopeItems(id, s.DB.Model(&models.Item{})).
		Where("LOWER(article) LIKE ?", "%"+strings.ToLower(term)+"%").
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, fmt.Errorf("%w: no item matched the scanned code", apperr.ErrNotFound)
		}
		return 0, err
	}
	return item.ID, nil
}

// QuickUpdate is the QR-path quantity change: the ledger write and the scan
// log land in one transaction.
func (s *Service) QuickUpdate(id access.Identity, qrData string, req ledger.ChangeRequest, scanType models.ScanType) (*ledger.Result, error) {
	if strings.TrimSpace(qrData) == "" {
		return nil, fmt.Errorf("%w: QR data is required", apperr.ErrValidation)
	}

	itemID, err := s.resolveItemID(id, qrData)
	if err != nil {
		return nil, err
	}

	var res *ledger.Result
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		res, txErr = s.Ledger.ApplyQrUpdateTx(tx, id, itemID, req)
		if txErr != nil {
			return txErr
		}
		return record(tx, res.Item, scanType, qrData, models.ScanActionUpdate,
			fmt.Sprintf("Qty updated: %d → %d", res.History.OldQty, res.History.NewQty), id.Username)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type CountScan struct {
	QRData     string `json:"qrData"`
	CountedQty int    `json:"countedQty"`
}

type CountResult struct {
	ItemID     uint   `json:"itemId,omitempty"`
	Article    string `json:"article,omitempty"`
	QRData     string `json:"qrData,omitempty"`
	SystemQty  int    `json:"systemQty"`
	CountedQty int    `json:"countedQty"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

type Discrepancy struct {
	ItemID     uint   `json:"itemId"`
	Article    string `json:"article"`
	SystemQty  int    `json:"systemQty"`
	CountedQty int    `json:"countedQty"`
	Difference int    `json:"difference"`
}

type CountReport struct {
	Results       []CountResult `json:"results"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// InventoryCount reconciles a batch of counted quantities against the system.
// It only logs check_in scans and reports discrepancies, it never mutates
// stock; applying corrections is a separate, deliberate step.
func (s *Service) InventoryCount(id access.Identity, scans []CountScan) (*CountReport, error) {
	if len(scans) == 0 {
		return nil, fmt.Errorf("%w: scans array is required", apperr.ErrValidation)
	}

	report := &CountReport{
		Results:       make([]CountResult, 0, len(scans)),
		Discrepancies: []Discrepancy{},
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, sc := range scans {
			itemID, err := s.resolveItemID(id, sc.QRData)
			if err != nil {
				report.Results = append(report.Results, CountResult{
					QRData:  sc.QRData,
					Success: false,
					Message: "Item not found",
				})
				continue
			}

			var item models.Item
			if err := access.ScopeItems(id, tx.Model(&models.Item{})).First(&item, itemID).Error; err != nil {
				report.Results = append(report.Results, CountResult{
					QRData:  sc.QRData,
					Success: false,
					Message: "Item not found",
				})
				continue
			}

			if item.Qty != sc.CountedQty {
				report.Discrepancies = append(report.Discrepancies, Discrepancy{
					ItemID:     item.ID,
					Article:    item.Article,
					SystemQty:  item.Qty,
					CountedQty: sc.CountedQty,
					Difference: sc.CountedQty - item.Qty,
				})
			}

			err = record(tx, &item, models.ScanTypeQR, sc.QRData, models.ScanActionCheckIn,
				fmt.Sprintf("Counted: %d, System: %d", sc.CountedQty, item.Qty), id.Username)
			if err != nil {
				return err
			}

			report.Results = append(report.Results, CountResult{
				ItemID:     item.ID,
				Article:    item.Article,
				SystemQty:  item.Qty,
				CountedQty: sc.CountedQty,
				Success:    true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type LogFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Action    models.ScanAction
	Limit     int
}

// ListLogs returns recent scan activity for items the caller may see.
func (s *Service) ListLogs(id access.Identity, filters LogFilters) ([]models.ScanLog, error) {
	q := s.DB.Model(&models.ScanLog{}).
		Joins("JOIN items ON items.id = scan_logs.item_id")
	q = access.ScopeItems(id, q)

	if filters.StartDate != nil {
		q = q.Where("scan_logs.created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		q = q.Where("scan_logs.created_at <= ?", *filters.EndDate)
	}
	if filters.Action != "" {
		q = q.Where("scan_logs.action = ?", filters.Action)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	var logs []models.ScanLog
	err := q.Order("scan_logs.created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
