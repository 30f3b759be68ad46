package ledger

import (
	"fmt"
	"time"

	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateQtyRequest struct {
	NewQty     *int              `json:"newQty"`
	Adjustment *int              `json:"adjustment"`
	ChangeType models.ChangeType `json:"changeType"`
	Notes      string            `json:"notes"`
}

// POST /api/items/:id/update-qty
func UpdateQtyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var body UpdateQtyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		res, err := svc.ApplyDetailUpdate(id, uint(itemID), ChangeRequest{
			Adjustment: body.Adjustment,
			Target:     body.NewQty,
			ChangeType: body.ChangeType,
			Notes:      body.Notes,
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"item":    res.Item,
			"history": res.History,
			"message": fmt.Sprintf("Qty updated from %d to %d", res.History.OldQty, res.History.NewQty),
		})
	}
}

type BulkUpdateRequest struct {
	Items      []BulkItem        `json:"items"`
	ChangeType models.ChangeType `json:"changeType"`
	Notes      string            `json:"notes"`
}

// POST /api/items/bulk/update-qty
func BulkUpdateQtyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body BulkUpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Items array is required")
		}

		res := svc.BulkApply(id, body.Items, body.ChangeType, body.Notes)

		return c.JSON(fiber.Map{
			"success":      true,
			"attempted":    res.Attempted,
			"updatedCount": res.Updated,
			"results":      res.Results,
		})
	}
}

// GET /api/items/:id/qty-history
func ItemHistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		history, err := svc.ListHistory(id, uint(itemID), c.QueryInt("limit"))
		if err != nil {
			return err
		}
		return c.JSON(history)
	}
}

// GET /api/qty-history
func AllHistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		filters := HistoryFilters{
			ChangeType: models.ChangeType(c.Query("changeType")),
			Limit:      c.QueryInt("limit"),
		}
		if t, ok := ParseDateQuery(c.Query("startDate")); ok {
			filters.StartDate = &t
		}
		if t, ok := ParseDateQuery(c.Query("endDate")); ok {
			filters.EndDate = &t
		}

		history, err := svc.ListAllHistory(id, filters)
		if err != nil {
			return err
		}
		return c.JSON(history)
	}
}

// ParseDateQuery accepts the date formats the frontend sends: plain dates and
// full RFC 3339 timestamps.
func ParseDateQuery(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
