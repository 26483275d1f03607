package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/pkg/jwt"
)

// Chaves de Locals preenchidas pelo AuthMiddleware.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalRoleID   = "role_id"
)

// AuthMiddleware valida o Bearer Token JWT e coloca usuário e cargo em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authorization header obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "token vazio"})
		}
		userID, name, roleID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserName, name)
		c.Locals(LocalRoleID, roleID)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRoleID devolve o RoleID do contexto (depois do middleware de auth).
func GetRoleID(c *fiber.Ctx) string {
	v := c.Locals(LocalRoleID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// roleGetter contrato mínimo para o middleware de permissões; o uso de
// interface evita o import circular com application/auth.
type roleGetter interface {
	GetRole(roleID string) (*entity.Role, error)
}

// RequirePermission devolve um middleware que verifica se o cargo do token
// permite a ação no módulo. Deve ser usado DEPOIS de AuthMiddleware.
func RequirePermission(module, action string, roles roleGetter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID := GetRoleID(c)
		if roleID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "cargo não encontrado no token"})
		}
		role, err := roles.GetRole(roleID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Message: "não foi possível verificar as permissões, tente de novo"})
		}
		if role == nil || !role.Allows(module, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "cargo sem permissão de '" + action + "' em '" + module + "'"})
		}
		return c.Next()
	}
}
