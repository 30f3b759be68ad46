package export

import (
	"fmt"
	"strings"
	"time"

	"warehouse-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// GET /api/export/csv
func ExportCSVHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		data, err := svc.ExportCSV(id)
		if err != nil {
			return err
		}

		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=warehouse-export-%s.csv", time.Now().Format("2006-01-02")))
		return c.Send(data)
	}
}

// POST /api/import/csv
func ImportCSVHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		body := c.Body()
		if len(body) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "CSV body is required")
		}

		res, err := svc.ImportCSV(id, body)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"message":  fmt.Sprintf("Imported %d items", res.Imported),
			"imported": res.Imported,
			"failed":   res.Failed,
			"errors":   res.Errors,
			"items":    res.Items,
		})
	}
}

// GET /api/export/xlsx
func ExportXLSXHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		data, err := svc.ExportXLSX(id)
		if err != nil {
			return err
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=warehouse-export-%s.xlsx", time.Now().Format("2006-01-02")))
		return c.Send(data)
	}
}

// POST /api/import/xlsx
func ImportXLSXHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file: "+err.Error())
		}
		defer file.Close()

		res, err := svc.ImportXLSX(id, file)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"message":  fmt.Sprintf("Imported %d items", res.Imported),
			"imported": res.Imported,
			"failed":   res.Failed,
			"errors":   res.Errors,
		})
	}
}

// GET /api/backup
func BackupHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		items, err := svc.visibleItems(id)
		if err != nil {
			return err
		}

		backupDate := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339))
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=warehouse-backup-%s.json", backupDate))
		return c.JSON(fiber.Map{
			"timestamp": time.Now().UTC(),
			"itemCount": len(items),
			"items":     items,
		})
	}
}
