// Package access holds the category-scoping policy. All predicates are pure:
// they look only at the identity and the item handed to them, never at the
// database or any global state.
package access

import (
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// Identity is the authenticated caller, resolved by the auth middleware from
// the JWT and passed explicitly into every service call.
type Identity struct {
	UserID     uint
	Username   string
	Role       models.UserRole
	CategoryID *uint // nil = unrestricted scope
}

func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// sameCategory reports whether the item sits inside the identity's scope.
// A nil identity category is unrestricted; a scoped identity matches only
// items carrying exactly its category, so uncategorized items stay hidden
// from scoped users.
func sameCategory(id Identity, itemCategoryID *uint) bool {
	if id.CategoryID == nil {
		return true
	}
	return itemCategoryID != nil && *itemCategoryID == *id.CategoryID
}

// CanRead reports whether the identity may see the item at all. Callers on
// read paths report a failure as not-found, never as permission-denied, so
// existence does not leak across category boundaries.
func CanRead(id Identity, item *models.Item) bool {
	if id.IsAdmin() {
		return true
	}
	return sameCategory(id, item.CategoryID)
}

// CanWrite reports whether the identity may create or modify item fields for
// the given target category. Operators never can; staff only inside their
// scope. Re-categorizing an item is checked separately and is admin-only.
func CanWrite(id Identity, categoryID *uint) bool {
	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStaff:
		return sameCategory(id, categoryID)
	default:
		return false
	}
}

// CanAdjustQty reports whether the identity may change the item's stock
// quantity. Unlike CanWrite this includes operators: counting and moving
// stock is their job, editing master data is not.
func CanAdjustQty(id Identity, item *models.Item) bool {
	if id.IsAdmin() {
		return true
	}
	return sameCategory(id, item.CategoryID)
}

// ScopeItems narrows an item query to the identity's category. List and
// search operations filter silently instead of failing.
func ScopeItems(id Identity, q *gorm.DB) *gorm.DB {
	if id.IsAdmin() || id.CategoryID == nil {
		return q
	}
	return q.Where("items.category_id = ?", *id.CategoryID)
}
