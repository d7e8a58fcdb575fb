package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/dto"
)

// Auth verifies the bearer tokens issued by the Users service.
type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{
		Secret: s,
	}
}

// Enabled reports whether tokens are checked at all. Without a secret every
// request acts as the anonymous user.
func (a Auth) Enabled() bool {
	return a.Secret != ""
}

func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, errors.New("missing token")
	}

	// support both:
	// - "Bearer <token>"
	// - "<token>"
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.AuthResponse{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return dto.AuthResponse{}, errors.New("missing subject")
	}

	// safer expiry parse
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return dto.AuthResponse{}, errors.New("missing expiry")
	}
	if time.Now().After(exp.Time) {
		return dto.AuthResponse{}, errors.New("token expired")
	}

	resp := dto.AuthResponse{
		UserID: sub,
		Expiry: float64(exp.Unix()),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		resp.Iat = float64(iat.Unix())
	}
	return resp, nil
}

// CurrentUserID returns the acting user stored by the auth middleware, or
// the anonymous user.
func CurrentUserID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("userID").(string); ok && id != "" {
		return id
	}
	return domain.AnonymousUser
}
