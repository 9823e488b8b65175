package auth

import (
	"fmt"
	"strings"

	"cockpit-backend/internal/config"
	"cockpit-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey  = "user_id"
	CtxUsuarioKey = "usuario"
	CtxProfileKey = "profile"
	CtxModulesKey = "modules"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Cabeçalho Authorization ausente")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Formato esperado: 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Não foi possível decodificar o token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsuarioKey, claims.Usuario)
		c.Locals(CtxProfileKey, claims.Profile)
		c.Locals(CtxModulesKey, claims.Modules)

		return c.Next()
	}
}

// RequireProfile restricts a route to the given profiles.
func RequireProfile(allowed ...models.UserProfile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, ok := c.Locals(CtxProfileKey).(models.UserProfile)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Perfil não identificado")
		}
		for _, p := range allowed {
			if p == profile {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Você não tem permissão para esta operação")
	}
}

// RequireModule restricts a route to users granted the given module.
// Administrators pass regardless of their access list.
func RequireModule(module string) fiber.Handler {
	return RequireAnyModule(module)
}

// RequireAnyModule admits users granted at least one of the given
// modules. Read-only surfaces shared between modules (the quote
// history is the budget listing) are gated with this.
func RequireAnyModule(modules ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, ok := c.Locals(CtxProfileKey).(models.UserProfile)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Perfil não identificado")
		}
		if profile == models.ProfileAdmin {
			return c.Next()
		}

		granted, _ := c.Locals(CtxModulesKey).([]string)
		for _, want := range modules {
			for _, m := range granted {
				if m == want {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Acesso ao módulo não liberado para este usuário")
	}
}

// CurrentUser returns the id and login of the authenticated user.
func CurrentUser(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals(CtxUserIDKey).(uint)
	usuario, _ := c.Locals(CtxUsuarioKey).(string)
	return id, usuario
}
