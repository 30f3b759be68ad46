package auth

import (
	"testing"

	"warehouse-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenCarriesIdentity(t *testing.T) {
	catID := uint(3)
	user := &models.User{
		ID:         7,
		Username:   "staff1",
		Role:       models.RoleStaff,
		CategoryID: &catID,
	}

	signed, err := GenerateToken("test-secret", user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parsing token: %v", err)
	}

	if claims.UserID != 7 || claims.Username != "staff1" || claims.Role != models.RoleStaff {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.CategoryID == nil || *claims.CategoryID != 3 {
		t.Errorf("expected categoryId 3, got %v", claims.CategoryID)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Error("expected expiry and issued-at to be set")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateToken("test-secret", &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("expected parse to fail with the wrong secret")
	}
}
