package admin

import (
	"errors"
	"testing"

	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"
)

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	db := database.NewTestDB(t)

	category := models.Category{Name: "electronics"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	item := models.Item{Article: "Resistor", Komponen: "smd", CategoryID: &category.ID}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seeding item: %v", err)
	}

	if err := DeleteCategory(db, category.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict while an item references the category, got %v", err)
	}

	if err := db.Delete(&item).Error; err != nil {
		t.Fatalf("removing item: %v", err)
	}

	user := models.User{Username: "staff1", PasswordHash: "x", Role: models.RoleStaff, CategoryID: &category.ID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	if err := DeleteCategory(db, category.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict while a user references the category, got %v", err)
	}

	if err := db.Delete(&user).Error; err != nil {
		t.Fatalf("removing user: %v", err)
	}

	if err := DeleteCategory(db, category.ID); err != nil {
		t.Fatalf("expected delete to succeed once unreferenced, got %v", err)
	}

	var n int64
	db.Model(&models.Category{}).Count(&n)
	if n != 0 {
		t.Errorf("category still present after delete")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := database.NewTestDB(t)
	if err := DeleteCategory(db, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
