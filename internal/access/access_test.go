package access

import (
	"testing"

	"warehouse-backend/internal/models"
)

func uintPtr(n uint) *uint { return &n }

func TestCanRead(t *testing.T) {
	admin := Identity{Role: models.RoleAdmin}
	unscoped := Identity{Role: models.RoleStaff}
	scoped := Identity{Role: models.RoleStaff, CategoryID: uintPtr(1)}

	inScope := &models.Item{CategoryID: uintPtr(1)}
	outOfScope := &models.Item{CategoryID: uintPtr(2)}
	uncategorized := &models.Item{}

	cases := []struct {
		name string
		id   Identity
		item *models.Item
		want bool
	}{
		{"admin reads anything", admin, outOfScope, true},
		{"unscoped staff reads anything", unscoped, outOfScope, true},
		{"unscoped staff reads uncategorized", unscoped, uncategorized, true},
		{"scoped staff reads own category", scoped, inScope, true},
		{"scoped staff denied other category", scoped, outOfScope, false},
		{"scoped staff denied uncategorized", scoped, uncategorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.id, tc.item); got != tc.want {
				t.Errorf("CanRead = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanWrite(t *testing.T) {
	cases := []struct {
		name     string
		id       Identity
		category *uint
		want     bool
	}{
		{"admin writes anywhere", Identity{Role: models.RoleAdmin}, uintPtr(2), true},
		{"operator never writes", Identity{Role: models.RoleOperator}, nil, false},
		{"scoped operator never writes", Identity{Role: models.RoleOperator, CategoryID: uintPtr(1)}, uintPtr(1), false},
		{"staff writes own category", Identity{Role: models.RoleStaff, CategoryID: uintPtr(1)}, uintPtr(1), true},
		{"staff denied other category", Identity{Role: models.RoleStaff, CategoryID: uintPtr(1)}, uintPtr(2), false},
		{"staff denied uncategorized", Identity{Role: models.RoleStaff, CategoryID: uintPtr(1)}, nil, false},
		{"unscoped staff writes anywhere", Identity{Role: models.RoleStaff}, uintPtr(2), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanWrite(tc.id, tc.category); got != tc.want {
				t.Errorf("CanWrite = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanAdjustQty(t *testing.T) {
	inScope := &models.Item{CategoryID: uintPtr(1)}
	outOfScope := &models.Item{CategoryID: uintPtr(2)}

	cases := []struct {
		name string
		id   Identity
		item *models.Item
		want bool
	}{
		{"admin adjusts anything", Identity{Role: models.RoleAdmin}, outOfScope, true},
		{"operator adjusts in scope", Identity{Role: models.RoleOperator, CategoryID: uintPtr(1)}, inScope, true},
		{"operator denied out of scope", Identity{Role: models.RoleOperator, CategoryID: uintPtr(1)}, outOfScope, false},
		{"unscoped operator adjusts anything", Identity{Role: models.RoleOperator}, outOfScope, true},
		{"staff adjusts in scope", Identity{Role: models.RoleStaff, CategoryID: uintPtr(1)}, inScope, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAdjustQty(tc.id, tc.item); got != tc.want {
				t.Errorf("CanAdjustQty = %v, want %v", got, tc.want)
			}
		})
	}
}
