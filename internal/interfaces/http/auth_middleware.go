package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/pkg/jwt"
)

// Locals key para la identidad autenticada en Fiber.
const LocalAuthUserID = "auth_user_id"

// AuthMiddleware valida el Bearer Token JWT y extrae el AuthUserID a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		authUserID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalAuthUserID, authUserID)
		return c.Next()
	}
}

// OptionalAuthMiddleware extrae la identidad si hay un token válido y sigue
// sin identidad en cualquier otro caso. Lo usa la puerta de sesión, que
// responde bienvenida en lugar de 401 cuando no hay sesión utilizable.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			if authUserID, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				c.Locals(LocalAuthUserID, authUserID)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// GetAuthUserID devuelve la identidad del contexto (después del middleware de auth).
func GetAuthUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalAuthUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
