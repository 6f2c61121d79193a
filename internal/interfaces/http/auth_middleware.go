package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Roles reconocidos en los tokens.
const (
	RoleAdmin    = "admin"
	RoleCounter  = "sayimci"
	RoleReadOnly = "izleyici"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return writeAuthError(c, "MISSING_TOKEN", fmt.Errorf("%w: Authorization header requerido", domain.ErrUnauthorized))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeAuthError(c, "INVALID_TOKEN", fmt.Errorf("%w: formato Bearer <token>", domain.ErrUnauthorized))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeAuthError(c, "MISSING_TOKEN", fmt.Errorf("%w: token vacío", domain.ErrUnauthorized))
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeAuthError(c, "INVALID_TOKEN", fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Va DESPUÉS de AuthMiddleware.
// Sin rol en el token: 401 MISSING_ROLE; rol no permitido: 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return writeAuthError(c, "MISSING_ROLE", fmt.Errorf("%w: el token no incluye rol", domain.ErrUnauthorized))
		}
		if _, ok := allowed[role]; !ok {
			return writeAuthError(c, "FORBIDDEN", fmt.Errorf("%w: rol %q sin permiso para esta operación", domain.ErrForbidden, role))
		}
		return c.Next()
	}
}

// writeAuthError 401 para domain.ErrUnauthorized, 403 para domain.ErrForbidden.
func writeAuthError(c *fiber.Ctx, code string, err error) error {
	status := fiber.StatusUnauthorized
	if errors.Is(err, domain.ErrForbidden) {
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
