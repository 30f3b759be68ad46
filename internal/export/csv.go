// Package export covers the spreadsheet round-trips: CSV and XLSX export,
// bulk import, and the JSON backup dump. Imports go through the inventory
// service row by row, so bulk data obeys the same validation and category
// rules as any other create.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Items *inventory.Service
}

func NewService(db *gorm.DB, items *inventory.Service) *Service {
	return &Service{DB: db, Items: items}
}

// Column layout of the legacy export; the import side accepts the same order.
var csvHeader = []string{"ID", "Article", "Komponen", "No PO", "Order", "Qty", "Min Stock", "Lokasi", "Created At", "Updated At"}

// visibleItems loads every item the caller may see, in shelf order.
func (s *Service) visibleItems(id access.Identity) ([]models.Item, error) {
	var items []models.Item
	err := access.ScopeItems(id, s.DB.Model(&models.Item{})).
		Order("kolom ASC, article ASC").
		Find(&items).Error
	return items, err
}

// ExportCSV renders the caller-visible items in the legacy column layout.
func (s *Service) ExportCSV(id access.Identity) ([]byte, error) {
	items, err := s.visibleItems(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.Article,
			item.Komponen,
			item.NoPo,
			strconv.Itoa(item.OrderQty),
			strconv.Itoa(item.Qty),
			strconv.Itoa(item.MinStock),
			item.Kolom,
			item.CreatedAt.Format(time.RFC3339),
			item.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
	Items    []models.Item
}

// ImportCSV creates one item per data row. Rows that fail validation are
// reported and skipped; they never block the rest of the file.
func (s *Service) ImportCSV(id access.Identity, data []byte) (*ImportResult, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse CSV", apperr.ErrValidation)
	}

	return s.importRows(id, rows, true)
}

// importRows is shared between CSV and XLSX import. Columns follow the
// export layout; withID marks layouts whose first column is the item id
// (ignored on import, ids are assigned by the database).
func (s *Service) importRows(id access.Identity, rows [][]string, withID bool) (*ImportResult, error) {
	res := &ImportResult{Items: []models.Item{}}

	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		start = 1
	}

	offset := 0
	if withID {
		offset = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(cell(row, offset)) == "" {
			continue
		}

		draft := inventory.ItemDraft{
			Article:  cell(row, offset),
			Komponen: cell(row, offset+1),
			NoPo:     cell(row, offset+2),
			OrderQty: cellInt(row, offset+3, 0),
			Qty:      cellInt(row, offset+4, 0),
			Kolom:    cell(row, offset+6),
		}
		minStock := cellInt(row, offset+5, 10)
		draft.MinStock = &minStock

		item, err := s.Items.Create(id, draft)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		res.Imported++
		res.Items = append(res.Items, *item)
	}

	return res, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return first == "ID" || strings.Contains(first, "ARTICLE")
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.Trim(strings.TrimSpace(row[i]), `"`)
}

func cellInt(row []string, i, def int) int {
	v := cell(row, i)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
