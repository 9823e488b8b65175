package auth

import (
	"strings"

	"cockpit-backend/internal/config"
	"cockpit-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterAdminRequest struct {
	Usuario  string `json:"usuario"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"senha"`
}

// RegisterAdminHandler bootstraps the first administrator. Once any
// admin exists the endpoint refuses further registrations; new users
// come in through the admin_users module.
func RegisterAdminHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Usuario = strings.TrimSpace(body.Usuario)
		if body.Usuario == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Usuário e senha são obrigatórios")
		}

		var count int64
		db.Model(&models.User{}).
			Where("profile = ?", models.ProfileAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Já existe um administrador cadastrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			Usuario:      body.Usuario,
			Email:        strings.TrimSpace(strings.ToLower(body.Email)),
			PasswordHash: string(hash),
			Profile:      models.ProfileAdmin,
			Status:       models.UserActive,
			Modules:      models.AllModules(),
		}

		if err := db.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      user.ID,
			"usuario": user.Usuario,
			"profile": user.Profile,
		})
	}
}

func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var user models.User
		if err := db.Where("usuario = ?", strings.TrimSpace(body.Usuario)).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário ou senha inválidos.")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário ou senha inválidos.")
		}

		if user.Status == models.UserInactive {
			return fiber.NewError(fiber.StatusForbidden, "Usuário inativo. Contate o administrador.")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":      user.ID,
				"usuario": user.Usuario,
				"email":   user.Email,
				"profile": user.Profile,
				"status":  user.Status,
				"modules": user.Modules,
			},
		})
	}
}

func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := CurrentUser(c)

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário não encontrado")
		}

		return c.JSON(fiber.Map{
			"id":      user.ID,
			"usuario": user.Usuario,
			"email":   user.Email,
			"profile": user.Profile,
			"status":  user.Status,
			"modules": user.Modules,
		})
	}
}
