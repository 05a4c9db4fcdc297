package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
	tokenLifetime = 48 * time.Hour
)

// BearerStrategy issues and verifies signed bearer tokens and resolves them
// back to admin records.
type BearerStrategy struct {
	admins repository.AdminRepository
	secret []byte
}

// IssueToken signs a token whose subject is the admin's identifier.
func (s *BearerStrategy) IssueToken(admin *models.Admin) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(admin.ID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Authenticate verifies the raw token and resolves its subject to an admin.
// Any failure resolves to (nil, false); the caller decides whether that is
// fatal for the request.
func (s *BearerStrategy) Authenticate(ctx context.Context, tokenString string) (*models.Admin, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, false
	}
	adminID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, false
	}

	admin, err := s.admins.GetByID(ctx, uint(adminID))
	if err != nil || admin == nil {
		return nil, false
	}
	return admin, true
}

// ExtractToken pulls the raw token out of an "Authorization: Bearer <token>" value.
func ExtractToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// generateJTI creates a unique token identifier.
func (s *BearerStrategy) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
