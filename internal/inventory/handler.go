package inventory

import (
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ItemRequest struct {
	Article     string            `json:"article"`
	Komponen    string            `json:"komponen"`
	NoPo        *string           `json:"noPo"`
	OrderQty    *int              `json:"order"`
	Qty         *int              `json:"qty"`
	Kolom       *string           `json:"kolom"`
	MinStock    *int              `json:"minStock"`
	CategoryID  *uint             `json:"categoryId"`
	ChangeType  models.ChangeType `json:"changeType"`
	ChangeNotes string            `json:"changeNotes"`
}

// POST /api/items
func CreateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		draft := ItemDraft{
			Article:    body.Article,
			Komponen:   body.Komponen,
			MinStock:   body.MinStock,
			CategoryID: body.CategoryID,
		}
		if body.NoPo != nil {
			draft.NoPo = *body.NoPo
		}
		if body.OrderQty != nil {
			draft.OrderQty = *body.OrderQty
		}
		if body.Qty != nil {
			draft.Qty = *body.Qty
		}
		if body.Kolom != nil {
			draft.Kolom = *body.Kolom
		}

		item, err := svc.Create(id, draft)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/items
func ListItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		filters := ListFilters{
			Search:    c.Query("search"),
			Kolom:     c.Query("kolom"),
			Komponen:  c.Query("komponen"),
			LowStock:  c.Query("lowStock") == "true",
			Limit:     c.QueryInt("limit"),
			Offset:    c.QueryInt("offset"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
		}

		items, total, err := svc.List(id, filters)
		if err != nil {
			return err
		}

		limit := filters.Limit
		if limit <= 0 {
			limit = 100
		}

		return c.JSON(fiber.Map{
			"items":   items,
			"total":   total,
			"limit":   limit,
			"offset":  filters.Offset,
			"hasMore": int64(filters.Offset+len(items)) < total,
		})
	}
}

// GET /api/items/:id
func GetItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		item, err := svc.Get(id, uint(itemID))
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// PUT /api/items/:id
func UpdateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		patch := ItemPatch{
			NoPo:        body.NoPo,
			OrderQty:    body.OrderQty,
			Qty:         body.Qty,
			Kolom:       body.Kolom,
			MinStock:    body.MinStock,
			CategoryID:  body.CategoryID,
			ChangeType:  body.ChangeType,
			ChangeNotes: body.ChangeNotes,
		}
		if body.Article != "" {
			patch.Article = &body.Article
		}
		if body.Komponen != "" {
			patch.Komponen = &body.Komponen
		}

		item, err := svc.Update(id, uint(itemID), patch)
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// DELETE /api/items/:id
func DeleteItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		if err := svc.Delete(id, uint(itemID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"status":  "deleted",
			"message": "Item deleted successfully",
		})
	}
}

// GET /api/unique-values
func UniqueValuesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		vals, err := svc.ListUniqueValues(id)
		if err != nil {
			return err
		}
		return c.JSON(vals)
	}
}
