package scan

import (
	"fmt"

	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/ledger"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type QRScanRequest struct {
	QRData   string          `json:"qrData"`
	ScanType models.ScanType `json:"scanType"`
}

// POST /api/qr-scan
func QRScanHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body QRScanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items, err := svc.Search(id, body.QRData, body.ScanType)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(items),
			"items":   items,
			"qrData":  body.QRData,
		})
	}
}

type QuickUpdateRequest struct {
	QRData     string            `json:"qrData"`
	Adjustment *int              `json:"adjustment"`
	NewQty     *int              `json:"newQty"`
	ChangeType models.ChangeType `json:"changeType"`
	Notes      string            `json:"notes"`
	ScanType   models.ScanType   `json:"scanType"`
}

// POST /api/qr-quick-update
func QuickUpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body QuickUpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		res, err := svc.QuickUpdate(id, body.QRData, ledger.ChangeRequest{
			Adjustment: body.Adjustment,
			Target:     body.NewQty,
			ChangeType: body.ChangeType,
			Notes:      body.Notes,
		}, body.ScanType)
		if err != nil {
			return err
		}

		delta := res.History.ChangeAmount
		return c.JSON(fiber.Map{
			"success": true,
			"item":    res.Item,
			"history": res.History,
			"message": fmt.Sprintf("Qty updated via QR: %d → %d (%+d)", res.History.OldQty, res.History.NewQty, delta),
		})
	}
}

type InventoryCountRequest struct {
	Scans []CountScan `json:"scans"`
}

// POST /api/inventory/count
func InventoryCountHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body InventoryCountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		report, err := svc.InventoryCount(id, body.Scans)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":          true,
			"totalScanned":     len(report.Results),
			"results":          report.Results,
			"discrepancies":    report.Discrepancies,
			"discrepancyCount": len(report.Discrepancies),
		})
	}
}

// GET /api/scan-logs
func ScanLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		filters := LogFilters{
			Action: models.ScanAction(c.Query("action")),
			Limit:  c.QueryInt("limit"),
		}
		if t, ok := ledger.ParseDateQuery(c.Query("startDate")); ok {
			filters.StartDate = &t
		}
		if t, ok := ledger.ParseDateQuery(c.Query("endDate")); ok {
			filters.EndDate = &t
		}

		logs, err := svc.ListLogs(id, filters)
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}
