package ledger

import (
	"fmt"
	"time"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type HistoryFilters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	ChangeType models.ChangeType
	Limit      int
}

// ListHistory returns the newest-first history for one item. Items outside
// the caller's scope report as not found, same as a direct get.
func (s *Service) ListHistory(id access.Identity, itemID uint, limit int) ([]models.QtyHistory, error) {
	var item models.Item
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, err
	}
	if !access.CanRead(id, &item) {
		return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
	}

	if limit <= 0 {
		limit = 50
	}

	var history []models.QtyHistory
	err := s.DB.
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}

// ListAllHistory returns recent history across all items the caller may see,
// for the dashboard and exports.
func (s *Service) ListAllHistory(id access.Identity, filters HistoryFilters) ([]models.QtyHistory, error) {
	q := s.DB.Model(&models.QtyHistory{}).
		Joins("JOIN items ON items.id = qty_histories.item_id")
	q = access.ScopeItems(id, q)

	if filters.StartDate != nil {
		q = q.Where("qty_histories.created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		q = q.Where("qty_histories.created_at <= ?", *filters.EndDate)
	}
	if filters.ChangeType != "" {
		q = q.Where("qty_histories.change_type = ?", filters.ChangeType)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	var history []models.QtyHistory
	err := q.Order("qty_histories.created_at DESC").Limit(limit).Find(&history).Error
	return history, err
}
