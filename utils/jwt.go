package utils

import (
	"errors"
	"fmt"
	"time"

	"branchbook/config"
	"branchbook/models"

	"github.com/golang-jwt/jwt"
)

const devSecret = "branchbook-dev-secret"

func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte(devSecret)
}

// GenerateToken creates a signed JWT for the given identity. Token issuance
// lives in the identity provider; this helper serves tests and ops scripts.
func GenerateToken(id models.Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", id.UserID),
		"role": id.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	if id.BranchID != 0 {
		claims["branch_id"] = id.BranchID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIdentityFromToken validates the token and reads sub, role and branch_id.
func ExtractIdentityFromToken(tokenString string) (models.Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}
	var userID int64
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID <= 0 {
		return models.Identity{}, errors.New("token 'sub' claim is not a user id")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return models.Identity{}, fmt.Errorf("unknown role %q", role)
	}

	var branchID int64
	if v, ok := claims["branch_id"].(float64); ok {
		branchID = int64(v)
	}

	return models.Identity{UserID: userID, Role: role, BranchID: branchID}, nil
}
