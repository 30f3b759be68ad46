// Package dashboard aggregates the numbers the frontend polls for its
// overview page.
package dashboard

import (
	"warehouse-backend/internal/access"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/ledger"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/scan"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Service
	Scans  *scan.Service
}

func NewService(db *gorm.DB, lg *ledger.Service, sc *scan.Service) *Service {
	return &Service{DB: db, Ledger: lg, Scans: sc}
}

type LocationStat struct {
	Kolom     string `json:"kolom"`
	ItemCount int64  `json:"itemCount"`
	TotalQty  int64  `json:"totalQty"`
}

// GET /api/dashboard/stats
func StatsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		items := func() *gorm.DB {
			return access.ScopeItems(id, svc.DB.Model(&models.Item{}))
		}

		var totalItems int64
		if err := items().Count(&totalItems).Error; err != nil {
			return err
		}

		var totalQty, totalOrder int64
		if err := items().Select("COALESCE(SUM(qty), 0)").Scan(&totalQty).Error; err != nil {
			return err
		}
		if err := items().Select("COALESCE(SUM(order_qty), 0)").Scan(&totalOrder).Error; err != nil {
			return err
		}

		var lowStockItems int64
		if err := items().Where("qty <= min_stock").Count(&lowStockItems).Error; err != nil {
			return err
		}

		var byLocation []LocationStat
		err = items().
			Select("kolom, COUNT(id) AS item_count, COALESCE(SUM(qty), 0) AS total_qty").
			Where("kolom <> ''").
			Group("kolom").
			Order("item_count DESC").
			Scan(&byLocation).Error
		if err != nil {
			return err
		}
		if byLocation == nil {
			byLocation = []LocationStat{}
		}

		recentActivities, err := svc.Ledger.ListAllHistory(id, ledger.HistoryFilters{Limit: 10})
		if err != nil {
			return err
		}

		recentScans, err := svc.Scans.ListLogs(id, scan.LogFilters{Limit: 5})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"totalItems":       totalItems,
			"totalQty":         totalQty,
			"totalOrder":       totalOrder,
			"lowStockItems":    lowStockItems,
			"itemsByLocation":  byLocation,
			"recentActivities": recentActivities,
			"recentScans":      recentScans,
		})
	}
}
