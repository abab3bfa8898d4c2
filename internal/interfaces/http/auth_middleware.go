package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dfquintero/mercado-api/internal/application/dto"
	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
	"github.com/dfquintero/mercado-api/pkg/token"
)

// Locals key para el UserID autenticado en Fiber.
const LocalUserID = "user_id"

// AuthMiddleware autentica el request por cualquiera de las dos vías: Bearer
// token JWT en Authorization, o cookie de sesión validada contra el store.
// Deja el UserID en c.Locals.
func AuthMiddleware(secret, cookieName string, sessions ports.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			userID, err := token.ParseAccess(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			c.Locals(LocalUserID, userID)
			return c.Next()
		}

		if sessionID := c.Cookies(cookieName); sessionID != "" {
			userID, err := sessions.Get(sessionID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
			if userID == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida o expirada"})
			}
			c.Locals(LocalUserID, userID)
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_CREDENTIALS", Message: "se requiere Bearer token o cookie de sesión"})
	}
}

// RequireStaff autoriza solo a usuarios con is_staff. Debe ir después de
// AuthMiddleware.
func RequireStaff(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.GetByID(GetUserID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if user == nil || !user.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere cuenta de staff"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
