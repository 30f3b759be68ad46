package export

import (
	"bytes"
	"fmt"
	"io"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Items"

// ExportXLSX renders the caller-visible items as a spreadsheet with the same
// column layout as the CSV export.
func (s *Service) ExportXLSX(id access.Identity) ([]byte, error) {
	items, err := s.visibleItems(id)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, item := range items {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			item.ID,
			item.Article,
			item.Komponen,
			item.NoPo,
			item.OrderQty,
			item.Qty,
			item.MinStock,
			item.Kolom,
			item.CreatedAt,
			item.UpdatedAt,
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX reads the first sheet of an uploaded workbook and creates one
// item per row, same rules as the CSV import.
func (s *Service) ImportXLSX(id access.Identity, file io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read Excel file", apperr.ErrValidation)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperr.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: could not read sheet", apperr.ErrValidation)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: workbook is empty", apperr.ErrValidation)
	}

	return s.importRows(id, rows, true)
}
