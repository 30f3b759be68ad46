package label

import (
	"encoding/base64"
	"time"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Items *inventory.Service
}

func NewService(db *gorm.DB, items *inventory.Service) *Service {
	return &Service{DB: db, Items: items}
}

func dataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// GET /api/items/:id/label-data
func LabelDataHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		item, err := svc.Items.Get(id, uint(itemID))
		if err != nil {
			return err
		}

		qrData := QRData(item)
		png, err := EncodePNG(qrData, qrcode.High, 256)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate QR code")
		}

		return c.JSON(fiber.Map{
			"id":            item.ID,
			"article":       item.Article,
			"komponen":      item.Komponen,
			"noPo":          item.NoPo,
			"qty":           item.Qty,
			"minStock":      item.MinStock,
			"kolom":         item.Kolom,
			"createdAt":     item.CreatedAt,
			"barcodeData":   BarcodeData(item),
			"qrData":        qrData,
			"qrCodeDataURL": dataURL(png),
		})
	}
}

type BulkLabelsRequest struct {
	ItemIDs []uint `json:"itemIds"`
}

// POST /api/labels/bulk
func BulkLabelsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body BulkLabelsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.ItemIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Item IDs array is required")
		}

		items, err := svc.itemsByID(id, body.ItemIDs)
		if err != nil {
			return err
		}

		labels := make([]fiber.Map, 0, len(items))
		for i := range items {
			item := &items[i]
			qrData := QRData(item)
			png, err := EncodePNG(qrData, qrcode.High, 256)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate QR code")
			}
			labels = append(labels, fiber.Map{
				"id":            item.ID,
				"article":       item.Article,
				"komponen":      item.Komponen,
				"qty":           item.Qty,
				"kolom":         item.Kolom,
				"minStock":      item.MinStock,
				"noPo":          item.NoPo,
				"barcode":       BulkBarcodeData(item),
				"qrData":        qrData,
				"qrCodeDataURL": dataURL(png),
				"timestamp":     time.Now().UTC().Format(time.RFC3339),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(labels),
			"labels":  labels,
		})
	}
}

// GET /api/items/:id/qrcode
func QRCodeHandler(svc *Service) fiber.Handler {
	return qrImageHandler(svc, QRData, qrcode.High, 256)
}

// GET /api/items/:id/label-qrcode
func LabelQRCodeHandler(svc *Service) fiber.Handler {
	return qrImageHandler(svc, LabelQRData, qrcode.Medium, 128)
}

func qrImageHandler(svc *Service, payload func(*models.Item) string, level qrcode.RecoveryLevel, size int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		itemID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		item, err := svc.Items.Get(id, uint(itemID))
		if err != nil {
			return err
		}

		png, err := EncodePNG(payload(item), level, size)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate QR code")
		}

		c.Set("Content-Type", "image/png")
		return c.Send(png)
	}
}

// POST /api/qrcode/batch
func BatchQRCodeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body BulkLabelsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.ItemIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Item IDs array is required")
		}

		items, err := svc.itemsByID(id, body.ItemIDs)
		if err != nil {
			return err
		}

		codes := make([]fiber.Map, 0, len(items))
		for i := range items {
			item := &items[i]
			qrData := QRData(item)
			png, err := EncodePNG(qrData, qrcode.High, 256)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate QR code")
			}
			codes = append(codes, fiber.Map{
				"id":            item.ID,
				"article":       item.Article,
				"qrData":        qrData,
				"qrCodeDataURL": dataURL(png),
				"location":      item.Kolom,
				"qty":           item.Qty,
				"minStock":      item.MinStock,
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(codes),
			"qrCodes": codes,
		})
	}
}

// itemsByID loads the requested items within the caller's scope, in shelf
// order for printing.
func (s *Service) itemsByID(id access.Identity, itemIDs []uint) ([]models.Item, error) {
	var items []models.Item
	err := access.ScopeItems(id, s.DB.Model(&models.Item{})).
		Where("items.id IN ?", itemIDs).
		Order("kolom ASC, article ASC").
		Find(&items).Error
	return items, err
}
