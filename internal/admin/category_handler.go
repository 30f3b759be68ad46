// Package admin holds the management endpoints reserved to the admin role:
// categories and user accounts.
package admin

import (
	"fmt"
	"strings"

	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /api/admin/categories
func CreateCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fmt.Errorf("%w: name is required", apperr.ErrValidation)
		}

		category := models.Category{
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
		}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("%w: category name already exists", apperr.ErrConflict)
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// GET /api/categories — open to all authenticated users for the dropdowns.
func ListCategoriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			return err
		}
		return c.JSON(categories)
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category id")
		}

		var category models.Category
		if err := db.First(&category, catID).Error; err != nil {
			return fmt.Errorf("%w: category %d", apperr.ErrNotFound, catID)
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			category.Name = name
		}
		category.Description = strings.TrimSpace(body.Description)

		if err := db.Save(&category).Error; err != nil {
			return fmt.Errorf("%w: category name already exists", apperr.ErrConflict)
		}
		return c.JSON(category)
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category id")
		}

		if err := DeleteCategory(db, uint(catID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

// DeleteCategory refuses to remove a category while any item or user still
// references it.
func DeleteCategory(db *gorm.DB, catID uint) error {
	var category models.Category
	if err := db.First(&category, catID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: category %d", apperr.ErrNotFound, catID)
		}
		return err
	}

	var itemCount int64
	db.Model(&models.Item{}).Where("category_id = ?", catID).Count(&itemCount)
	if itemCount > 0 {
		return fmt.Errorf("%w: %d items still reference this category", apperr.ErrConflict, itemCount)
	}

	var userCount int64
	db.Model(&models.User{}).Where("category_id = ?", catID).Count(&userCount)
	if userCount > 0 {
		return fmt.Errorf("%w: %d users still reference this category", apperr.ErrConflict, userCount)
	}

	return db.Delete(&category).Error
}
