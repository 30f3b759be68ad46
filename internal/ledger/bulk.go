package ledger

import (
	"fmt"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type BulkItem struct {
	ID         uint `json:"id"`
	Adjustment *int `json:"adjustment"`
	Target     *int `json:"newQty"`
}

type BulkItemResult struct {
	ID      uint   `json:"id"`
	Article string `json:"article"`
	OldQty  int    `json:"oldQty"`
	NewQty  int    `json:"newQty"`
	Success bool   `json:"success"`
}

type BulkResult struct {
	Attempted int              `json:"attempted"`
	Updated   int              `json:"updatedCount"`
	Results   []BulkItemResult `json:"results"`
}

// BulkApply runs the single-item apply for each entry. Items are independent:
// a missing item, a scope rejection, or a would-go-negative result is skipped
// and left out of the result list, it never blocks the rest of the batch.
// Each success is its own atomic item+history transaction. The attempted vs
// updated counts let the caller detect partial failure.
func (s *Service) BulkApply(id access.Identity, items []BulkItem, changeType models.ChangeType, notes string) *BulkResult {
	res := &BulkResult{
		Attempted: len(items),
		Results:   make([]BulkItemResult, 0, len(items)),
	}

	for _, entry := range items {
		req := ChangeRequest{
			Adjustment: entry.Adjustment,
			Target:     entry.Target,
			ChangeType: changeType,
			Notes:      notes,
		}
		if req.ChangeType == "" {
			req.ChangeType = models.ChangeAdjustment
		}
		if req.Notes == "" {
			req.Notes = bulkNote(entry)
		}

		var applied *Result
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			applied, txErr = s.apply(tx, id, entry.ID, req, detailChangeType, detailNote)
			return txErr
		})
		if err != nil {
			continue
		}

		res.Updated++
		res.Results = append(res.Results, BulkItemResult{
			ID:      applied.Item.ID,
			Article: applied.Item.Article,
			OldQty:  applied.History.OldQty,
			NewQty:  applied.History.NewQty,
			Success: true,
		})
	}

	return res
}

func bulkNote(entry BulkItem) string {
	if entry.Target != nil {
		return fmt.Sprintf("Bulk update: Set to %d", *entry.Target)
	}
	if entry.Adjustment != nil {
		return fmt.Sprintf("Bulk update: Adjusted by %+d", *entry.Adjustment)
	}
	return "Bulk update"
}
