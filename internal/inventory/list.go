package inventory

import (
	"strings"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type ListFilters struct {
	Search    string
	Kolom     string
	Komponen  string
	LowStock  bool
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// Columns the frontend may sort by. Anything else falls back to the default
// shelf ordering.
var sortColumns = map[string]string{
	"id":        "id",
	"article":   "article",
	"komponen":  "komponen",
	"noPo":      "no_po",
	"order":     "order_qty",
	"qty":       "qty",
	"kolom":     "kolom",
	"minStock":  "min_stock",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// List returns the caller-visible items plus the total matching count for
// pagination. The category scope filter is applied before everything else.
func (s *Service) List(id access.Identity, filters ListFilters) ([]models.Item, int64, error) {
	base := func() *gorm.DB {
		return applyFilters(access.ScopeItems(id, s.DB.Model(&models.Item{})), filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	order := "kolom ASC, article ASC"
	if col, ok := sortColumns[filters.SortBy]; ok {
		dir := "ASC"
		if strings.EqualFold(filters.SortOrder, "desc") {
			dir = "DESC"
		}
		order = col + " " + dir + ", updated_at DESC"
	}

	var items []models.Item
	err := base().Preload("Category").
		Order(order).
		Limit(limit).
		Offset(filters.Offset).
		Find(&items).Error
	return items, total, err
}

func applyFilters(q *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Kolom != "" {
		q = q.Where("kolom = ?", filters.Kolom)
	}
	if filters.Komponen != "" {
		q = q.Where("komponen = ?", filters.Komponen)
	}
	if filters.LowStock {
		q = q.Where("qty <= min_stock")
	}
	if filters.Search != "" {
		term := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where(
			"LOWER(article) LIKE ? OR LOWER(komponen) LIKE ? OR LOWER(no_po) LIKE ? OR LOWER(kolom) LIKE ?",
			term, term, term, term,
		)
	}
	return q
}

type UniqueValues struct {
	Komponen []string `json:"komponen"`
	Kolom    []string `json:"kolom"`
}

// ListUniqueValues feeds the frontend filter dropdowns.
func (s *Service) ListUniqueValues(id access.Identity) (*UniqueValues, error) {
	vals := &UniqueValues{Komponen: []string{}, Kolom: []string{}}

	q := access.ScopeItems(id, s.DB.Model(&models.Item{}))
	if err := q.Where("komponen <> ''").Distinct("komponen").Order("komponen ASC").
		Pluck("komponen", &vals.Komponen).Error; err != nil {
		return nil, err
	}

	q = access.ScopeItems(id, s.DB.Model(&models.Item{}))
	if err := q.Where("kolom <> ''").Distinct("kolom").Order("kolom ASC").
		Pluck("kolom", &vals.Kolom).Error; err != nil {
		return nil, err
	}

	return vals, nil
}
