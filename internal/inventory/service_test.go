package inventory

import (
	"errors"
	"testing"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/ledger"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewService(db, ledger.NewService(db)), db
}

func adminIdentity() access.Identity {
	return access.Identity{UserID: 1, Username: "admin", Role: models.RoleAdmin}
}

func staffIdentity(categoryID uint) access.Identity {
	return access.Identity{UserID: 2, Username: "staff", Role: models.RoleStaff, CategoryID: &categoryID}
}

func seedCategories(t *testing.T, db *gorm.DB) (models.Category, models.Category) {
	t.Helper()
	c1 := models.Category{Name: "electronics"}
	c2 := models.Category{Name: "hardware"}
	if err := db.Create(&c1).Error; err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	if err := db.Create(&c2).Error; err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return c1, c2
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCreateWritesInitialHistory(t *testing.T) {
	svc, db := newTestService(t)

	item, err := svc.Create(adminIdentity(), ItemDraft{
		Article:  "Hinge A",
		Komponen: "bracket",
		Qty:      7,
		Kolom:    "A1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.MinStock != 10 {
		t.Errorf("expected default minStock 10, got %d", item.MinStock)
	}

	var histories []models.QtyHistory
	db.Where("item_id = ?", item.ID).Find(&histories)
	if len(histories) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(histories))
	}
	h := histories[0]
	if h.OldQty != 0 || h.NewQty != 7 || h.ChangeAmount != 7 {
		t.Errorf("history old=%d new=%d change=%d, want 0/7/7", h.OldQty, h.NewQty, h.ChangeAmount)
	}
	if h.ChangeType != models.ChangeInbound {
		t.Errorf("expected inbound, got %q", h.ChangeType)
	}
	if h.Notes != "Initial stock creation" {
		t.Errorf("unexpected notes: %q", h.Notes)
	}
}

func TestCreateZeroQtyNoHistory(t *testing.T) {
	svc, db := newTestService(t)

	item, err := svc.Create(adminIdentity(), ItemDraft{Article: "Empty", Komponen: "bracket"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var n int64
	db.Model(&models.QtyHistory{}).Where("item_id = ?", item.ID).Count(&n)
	if n != 0 {
		t.Errorf("expected no history for zero-qty item, got %d", n)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	admin := adminIdentity()

	cases := []struct {
		name  string
		draft ItemDraft
	}{
		{"blank article", ItemDraft{Article: "   ", Komponen: "bracket"}},
		{"blank komponen", ItemDraft{Article: "Hinge", Komponen: ""}},
		{"negative qty", ItemDraft{Article: "Hinge", Komponen: "bracket", Qty: -1}},
		{"negative order", ItemDraft{Article: "Hinge", Komponen: "bracket", OrderQty: -1}},
		{"negative minStock", ItemDraft{Article: "Hinge", Komponen: "bracket", MinStock: intPtr(-1)}},
		{"unknown category", ItemDraft{Article: "Hinge", Komponen: "bracket", CategoryID: func() *uint { v := uint(99); return &v }()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(admin, tc.draft); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateStaffCategoryForced(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)

	// Staff cannot place items outside their own category, the supplied
	// category is replaced rather than rejected.
	item, err := svc.Create(staffIdentity(c1.ID), ItemDraft{
		Article:    "Resistor",
		Komponen:   "smd",
		CategoryID: &c2.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.CategoryID == nil || *item.CategoryID != c1.ID {
		t.Errorf("expected category %d, got %v", c1.ID, item.CategoryID)
	}
}

func TestCreateOperatorDenied(t *testing.T) {
	svc, _ := newTestService(t)
	op := access.Identity{UserID: 3, Username: "op", Role: models.RoleOperator}

	_, err := svc.Create(op, ItemDraft{Article: "Hinge", Komponen: "bracket"})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestUpdateFieldsAndQtyTogether(t *testing.T) {
	svc, db := newTestService(t)
	admin := adminIdentity()

	item, err := svc.Create(admin, ItemDraft{Article: "Hinge A", Komponen: "bracket", Qty: 5, Kolom: "A1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(admin, item.ID, ItemPatch{
		Kolom:       strPtr("B2"),
		Qty:         intPtr(12),
		ChangeNotes: "restock",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Kolom != "B2" || updated.Qty != 12 {
		t.Errorf("expected kolom B2 qty 12, got %q %d", updated.Kolom, updated.Qty)
	}

	var histories []models.QtyHistory
	db.Where("item_id = ?", item.ID).Order("id ASC").Find(&histories)
	if len(histories) != 2 {
		t.Fatalf("expected 2 history rows (create + update), got %d", len(histories))
	}
	h := histories[1]
	if h.OldQty != 5 || h.NewQty != 12 || h.ChangeType != models.ChangeManual {
		t.Errorf("history old=%d new=%d type=%q, want 5/12/manual", h.OldQty, h.NewQty, h.ChangeType)
	}
	if h.Notes != "restock" {
		t.Errorf("expected caller notes, got %q", h.Notes)
	}
}

func TestUpdateSameQtyNoHistory(t *testing.T) {
	svc, db := newTestService(t)
	admin := adminIdentity()

	item, err := svc.Create(admin, ItemDraft{Article: "Hinge A", Komponen: "bracket", Qty: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(admin, item.ID, ItemPatch{Qty: intPtr(5), Kolom: strPtr("C3")}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var n int64
	db.Model(&models.QtyHistory{}).Where("item_id = ?", item.ID).Count(&n)
	if n != 1 {
		t.Errorf("unchanged qty should not add history, got %d rows", n)
	}
}

func TestUpdateOutOfScopeDenied(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)

	item, err := svc.Create(adminIdentity(), ItemDraft{Article: "Resistor", Komponen: "smd", CategoryID: &c2.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(staffIdentity(c1.ID), item.ID, ItemPatch{Kolom: strPtr("Z9")})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestUpdateCategoryChangeAdminOnly(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)

	item, err := svc.Create(adminIdentity(), ItemDraft{Article: "Resistor", Komponen: "smd", CategoryID: &c1.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(staffIdentity(c1.ID), item.ID, ItemPatch{CategoryID: &c2.ID})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for staff re-categorize, got %v", err)
	}

	updated, err := svc.Update(adminIdentity(), item.ID, ItemPatch{CategoryID: &c2.ID})
	if err != nil {
		t.Fatalf("admin re-categorize: %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID != c2.ID {
		t.Errorf("expected category %d, got %v", c2.ID, updated.CategoryID)
	}
}

func TestGetOutOfScopeReadsAsMissing(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)

	item, err := svc.Create(adminIdentity(), ItemDraft{Article: "Resistor", Komponen: "smd", CategoryID: &c2.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Get(staffIdentity(c1.ID), item.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}

	got, err := svc.Get(staffIdentity(c2.ID), item.ID)
	if err != nil {
		t.Fatalf("in-scope Get: %v", err)
	}
	if got.Category == nil || got.Category.Name != "hardware" {
		t.Errorf("expected preloaded category, got %+v", got.Category)
	}
}

func TestDeleteAdminOnlyAndCascades(t *testing.T) {
	svc, db := newTestService(t)
	admin := adminIdentity()

	item, err := svc.Create(admin, ItemDraft{Article: "Doomed", Komponen: "bracket", Qty: 9})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	db.Create(&models.ScanLog{ItemID: item.ID, Article: item.Article, ScanType: models.ScanTypeQR, Action: models.ScanActionSearch})

	c1, _ := seedCategories(t, db)
	if err := svc.Delete(staffIdentity(c1.ID), item.ID); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for staff delete, got %v", err)
	}

	if err := svc.Delete(admin, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(admin, item.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected deleted item to read as missing, got %v", err)
	}
	var histories, logs int64
	db.Model(&models.QtyHistory{}).Where("item_id = ?", item.ID).Count(&histories)
	db.Model(&models.ScanLog{}).Where("item_id = ?", item.ID).Count(&logs)
	if histories != 0 || logs != 0 {
		t.Errorf("cascade left %d histories and %d scan logs", histories, logs)
	}

	if err := svc.Delete(admin, item.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete should be not-found, got %v", err)
	}
}

func TestListScopingAndFilters(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)
	admin := adminIdentity()

	mk := func(article, komponen, kolom string, qty, minStock int, cat *uint) {
		t.Helper()
		_, err := svc.Create(admin, ItemDraft{
			Article: article, Komponen: komponen, Kolom: kolom,
			Qty: qty, MinStock: intPtr(minStock), CategoryID: cat,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", article, err)
		}
	}
	mk("Hinge Left", "bracket", "A1", 50, 5, &c1.ID)
	mk("Hinge Right", "bracket", "A2", 2, 5, &c1.ID)
	mk("Resistor", "smd", "B1", 100, 5, &c2.ID)
	mk("Loose Screw", "fastener", "B2", 9, 5, nil)

	items, total, err := svc.List(admin, ListFilters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 || len(items) != 4 {
		t.Errorf("admin expected 4 items, got total=%d len=%d", total, len(items))
	}

	// Scoped staff never see other categories or uncategorized items.
	items, total, err = svc.List(staffIdentity(c1.ID), ListFilters{})
	if err != nil {
		t.Fatalf("List staff: %v", err)
	}
	if total != 2 {
		t.Errorf("staff expected total 2, got %d", total)
	}
	for _, it := range items {
		if it.CategoryID == nil || *it.CategoryID != c1.ID {
			t.Errorf("out-of-scope item leaked: %+v", it)
		}
	}

	items, total, err = svc.List(admin, ListFilters{LowStock: true})
	if err != nil {
		t.Fatalf("List lowStock: %v", err)
	}
	if total != 1 || items[0].Article != "Hinge Right" {
		t.Errorf("expected only Hinge Right low on stock, got total=%d", total)
	}

	_, total, err = svc.List(admin, ListFilters{Search: "hinge"})
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 search matches, got %d", total)
	}

	items, total, err = svc.List(admin, ListFilters{SortBy: "qty", SortOrder: "desc", Limit: 2})
	if err != nil {
		t.Fatalf("List sorted: %v", err)
	}
	if total != 4 {
		t.Errorf("limit must not shrink the total, got %d", total)
	}
	if len(items) != 2 || items[0].Article != "Resistor" {
		t.Errorf("expected Resistor first at limit 2, got %+v", items)
	}
}

func TestListUniqueValues(t *testing.T) {
	svc, db := newTestService(t)
	c1, c2 := seedCategories(t, db)
	admin := adminIdentity()

	for _, d := range []ItemDraft{
		{Article: "A", Komponen: "bracket", Kolom: "A1", CategoryID: &c1.ID},
		{Article: "B", Komponen: "bracket", Kolom: "A2", CategoryID: &c1.ID},
		{Article: "C", Komponen: "smd", Kolom: "B1", CategoryID: &c2.ID},
	} {
		if _, err := svc.Create(admin, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	vals, err := svc.ListUniqueValues(admin)
	if err != nil {
		t.Fatalf("ListUniqueValues: %v", err)
	}
	if len(vals.Komponen) != 2 || len(vals.Kolom) != 3 {
		t.Errorf("expected 2 komponen and 3 kolom, got %v / %v", vals.Komponen, vals.Kolom)
	}

	vals, err = svc.ListUniqueValues(staffIdentity(c2.ID))
	if err != nil {
		t.Fatalf("ListUniqueValues staff: %v", err)
	}
	if len(vals.Komponen) != 1 || vals.Komponen[0] != "smd" {
		t.Errorf("expected scoped komponen [smd], got %v", vals.Komponen)
	}
}
