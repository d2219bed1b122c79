package utils

import (
	"testing"
	"time"

	"branchbook/models"

	"github.com/golang-jwt/jwt"
)

func TestIdentityRoundTrip(t *testing.T) {
	want := models.Identity{UserID: 42, Role: models.RoleEmployee, BranchID: 3}
	token, err := GenerateToken(want, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ExtractIdentityFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractIdentityRejects(t *testing.T) {
	sign := func(claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Minute).Unix()}, jwt.SigningMethodHS256, secretKey())},
		{"wrong key", sign(jwt.MapClaims{"sub": "1", "exp": exp}, jwt.SigningMethodHS256, []byte("other"))},
		{"non numeric sub", sign(jwt.MapClaims{"sub": "alice", "exp": exp}, jwt.SigningMethodHS256, secretKey())},
		{"unknown role", sign(jwt.MapClaims{"sub": "1", "role": "root", "exp": exp}, jwt.SigningMethodHS256, secretKey())},
		{"not a jwt", "abc.def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractIdentityFromToken(tt.token); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMissingRoleDefaultsToUser(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "9"}).SignedString(secretKey())
	if err != nil {
		t.Fatal(err)
	}
	id, err := ExtractIdentityFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if id.Role != models.RoleUser || id.UserID != 9 {
		t.Errorf("got %+v", id)
	}
}
