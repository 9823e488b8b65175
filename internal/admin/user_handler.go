// Package admin holds the user-management endpoints, restricted to the
// Administrador profile.
package admin

import (
	"errors"
	"strings"

	"cockpit-backend/internal/audit"
	"cockpit-backend/internal/auth"
	"cockpit-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SaveUserRequest struct {
	Usuario  string   `json:"usuario"`
	Email    string   `json:"email"`
	Password string   `json:"senha"` // blank on update keeps the current one
	Profile  string   `json:"perfil"`
	Status   string   `json:"status"`
	Modules  []string `json:"modulos"`
}

type UserResponse struct {
	ID      uint               `json:"id"`
	Usuario string             `json:"usuario"`
	Email   string             `json:"email"`
	Profile models.UserProfile `json:"perfil"`
	Status  models.UserStatus  `json:"status"`
	Modules []string           `json:"modulos"`
}

func toUserResponse(u models.User) UserResponse {
	modules := u.Modules
	if modules == nil {
		modules = []string{}
	}
	return UserResponse{
		ID:      u.ID,
		Usuario: u.Usuario,
		Email:   u.Email,
		Profile: u.Profile,
		Status:  u.Status,
		Modules: modules,
	}
}

func validProfile(p string) bool {
	switch models.UserProfile(p) {
	case models.ProfileAdmin, models.ProfileUser:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch models.UserStatus(s) {
	case models.UserActive, models.UserInactive:
		return true
	}
	return false
}

func knownModules(requested []string) []string {
	all := models.AllModules()
	var granted []string
	for _, id := range requested {
		for _, known := range all {
			if id == known {
				granted = append(granted, id)
				break
			}
		}
	}
	return granted
}

// GET /api/users
func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os usuários")
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, toUserResponse(u))
		}
		return c.JSON(resp)
	}
}

// POST /api/users
func CreateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Usuario = strings.TrimSpace(body.Usuario)
		if body.Usuario == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Usuário e senha são obrigatórios")
		}
		if !validProfile(body.Profile) {
			return fiber.NewError(fiber.StatusBadRequest, "Perfil inválido")
		}
		if body.Status == "" {
			body.Status = string(models.UserActive)
		}
		if !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
		}

		var count int64
		db.Model(&models.User{}).Where("usuario = ?", body.Usuario).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Já existe um usuário com esse login")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			Usuario:      body.Usuario,
			Email:        strings.TrimSpace(strings.ToLower(body.Email)),
			PasswordHash: string(hash),
			Profile:      models.UserProfile(body.Profile),
			Status:       models.UserStatus(body.Status),
			Modules:      knownModules(body.Modules),
		}
		if err := db.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		actorID, actorName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: "Usuário: " + user.Usuario,
			After:       toUserResponse(user),
		})

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// PUT /api/users/:id
func UpdateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o usuário")
		}
		before := toUserResponse(user)

		var body SaveUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Usuario != "" {
			user.Usuario = strings.TrimSpace(body.Usuario)
		}
		if body.Email != "" {
			user.Email = strings.TrimSpace(strings.ToLower(body.Email))
		}
		if body.Profile != "" {
			if !validProfile(body.Profile) {
				return fiber.NewError(fiber.StatusBadRequest, "Perfil inválido")
			}
			user.Profile = models.UserProfile(body.Profile)
		}
		if body.Status != "" {
			if !validStatus(body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
			}
			user.Status = models.UserStatus(body.Status)
		}
		if body.Modules != nil {
			user.Modules = knownModules(body.Modules)
		}
		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
			}
			user.PasswordHash = string(hash)
		}

		if err := db.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o usuário")
		}

		actorID, actorName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: "Usuário: " + user.Usuario,
			Before:      before,
			After:       toUserResponse(user),
		})

		return c.JSON(toUserResponse(user))
	}
}

// DELETE /api/users/:id — an administrator cannot delete themselves.
func DeleteUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		actorID, actorName := auth.CurrentUser(c)
		if uint(id) == actorID {
			return fiber.NewError(fiber.StatusBadRequest, "Você não pode excluir o próprio usuário")
		}

		if err := db.Delete(&models.User{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o usuário")
		}

		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:     actorID,
			UserName:   actorName,
			EntityType: "user",
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
