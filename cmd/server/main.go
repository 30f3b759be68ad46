package main

import (
	"errors"
	"log"
	"strings"

	"warehouse-backend/internal/admin"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/dashboard"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/export"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/label"
	"warehouse-backend/internal/ledger"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/scan"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrPermissionDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusConflict
	default:
		log.Println("Unexpected error:", err)
		return c.Status(status).JSON(fiber.Map{"error": "Unexpected server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func main() {
	cfg := config.Load()
	database.Init(cfg)

	ledgerSvc := ledger.NewService(database.DB)
	itemSvc := inventory.NewService(database.DB, ledgerSvc)
	scanSvc := scan.NewService(database.DB, ledgerSvc)
	labelSvc := label.NewService(database.DB, itemSvc)
	exportSvc := export.NewService(database.DB, itemSvc)
	dashSvc := dashboard.NewService(database.DB, ledgerSvc, scanSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only management
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", admin.CreateUserHandler(database.DB))
	adminRoutes.Get("/users", admin.ListUsersHandler(database.DB))
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler(database.DB))
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler(database.DB))

	adminRoutes.Post("/categories", admin.CreateCategoryHandler(database.DB))
	adminRoutes.Put("/categories/:id", admin.UpdateCategoryHandler(database.DB))
	adminRoutes.Delete("/categories/:id", admin.DeleteCategoryHandler(database.DB))

	// Categories are readable by everyone for the filter dropdowns
	protected.Get("/categories", admin.ListCategoriesHandler(database.DB))

	// Items
	protected.Post("/items", inventory.CreateItemHandler(itemSvc))
	protected.Get("/items", inventory.ListItemsHandler(itemSvc))
	protected.Get("/items/:id", inventory.GetItemHandler(itemSvc))
	protected.Put("/items/:id", inventory.UpdateItemHandler(itemSvc))
	protected.Delete("/items/:id", inventory.DeleteItemHandler(itemSvc))
	protected.Get("/unique-values", inventory.UniqueValuesHandler(itemSvc))

	// Quantity ledger. Bulk first so "bulk" is not swallowed by the :id route.
	protected.Post("/items/bulk/update-qty", ledger.BulkUpdateQtyHandler(ledgerSvc))
	protected.Post("/items/:id/update-qty", ledger.UpdateQtyHandler(ledgerSvc))
	protected.Get("/items/:id/qty-history", ledger.ItemHistoryHandler(ledgerSvc))
	protected.Get("/qty-history", ledger.AllHistoryHandler(ledgerSvc))

	// QR scanning
	protected.Post("/qr-scan", scan.QRScanHandler(scanSvc))
	protected.Post("/qr-quick-update", scan.QuickUpdateHandler(scanSvc))
	protected.Post("/inventory/count", scan.InventoryCountHandler(scanSvc))
	protected.Get("/scan-logs", scan.ScanLogsHandler(scanSvc))

	// Labels and QR images
	protected.Get("/items/:id/label-data", label.LabelDataHandler(labelSvc))
	protected.Get("/items/:id/qrcode", label.QRCodeHandler(labelSvc))
	protected.Get("/items/:id/label-qrcode", label.LabelQRCodeHandler(labelSvc))
	protected.Post("/labels/bulk", label.BulkLabelsHandler(labelSvc))
	protected.Post("/qrcode/batch", label.BatchQRCodeHandler(labelSvc))

	// Export / import / backup
	protected.Get("/export/csv", export.ExportCSVHandler(exportSvc))
	protected.Post("/import/csv", export.ImportCSVHandler(exportSvc))
	protected.Get("/export/xlsx", export.ExportXLSXHandler(exportSvc))
	protected.Post("/import/xlsx", export.ImportXLSXHandler(exportSvc))
	protected.Get("/backup", export.BackupHandler(exportSvc))

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler(dashSvc))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
