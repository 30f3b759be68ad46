package admin

import (
	"fmt"
	"strings"

	"warehouse-backend/internal/apperr"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRequest struct {
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	Role       models.UserRole `json:"role"`
	CategoryID *uint           `json:"categoryId"`
}

func validRole(r models.UserRole) bool {
	switch r {
	case models.RoleAdmin, models.RoleStaff, models.RoleOperator:
		return true
	}
	return false
}

// POST /api/admin/users
func CreateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fmt.Errorf("%w: username and password are required", apperr.ErrValidation)
		}
		if !validRole(body.Role) {
			return fmt.Errorf("%w: role must be admin, staff or operator", apperr.ErrValidation)
		}

		if body.CategoryID != nil {
			var count int64
			db.Model(&models.Category{}).Where("id = ?", *body.CategoryID).Count(&count)
			if count == 0 {
				return fmt.Errorf("%w: category %d does not exist", apperr.ErrValidation, *body.CategoryID)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         body.Role,
			CategoryID:   body.CategoryID,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("%w: username already exists", apperr.ErrConflict)
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// GET /api/admin/users
func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Preload("Category").Order("username ASC").Find(&users).Error; err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// PUT /api/admin/users/:id
func UpdateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}

		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if username := strings.TrimSpace(body.Username); username != "" {
			user.Username = username
		}
		if body.Role != "" {
			if !validRole(body.Role) {
				return fmt.Errorf("%w: role must be admin, staff or operator", apperr.ErrValidation)
			}
			user.Role = body.Role
		}
		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			user.PasswordHash = string(hash)
		}
		if body.CategoryID != nil {
			var count int64
			db.Model(&models.Category{}).Where("id = ?", *body.CategoryID).Count(&count)
			if count == 0 {
				return fmt.Errorf("%w: category %d does not exist", apperr.ErrValidation, *body.CategoryID)
			}
		}
		user.CategoryID = body.CategoryID

		if err := db.Save(&user).Error; err != nil {
			return fmt.Errorf("%w: username already exists", apperr.ErrConflict)
		}
		return c.JSON(user)
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		userID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
		}
		if uint(userID) == id.UserID {
			return fmt.Errorf("%w: you cannot delete your own account", apperr.ErrValidation)
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}

		if err := db.Delete(&user).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}
