package catalog

import (
	"cockpit-backend/internal/audit"
	"cockpit-backend/internal/auth"
	"cockpit-backend/internal/models"
	"cockpit-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTypeRequest struct {
	Name  string `json:"nome"`
	Color string `json:"cor"`
}

type CreateFamilyRequest struct {
	Name        string `json:"nome"`
	InputTypeID uint   `json:"tipo_insumo_id"`
}

// GET /api/input-types
func ListTypesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := st.ListTypes()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os tipos de insumo")
		}
		return c.JSON(types)
	}
}

// POST /api/input-types
func CreateTypeHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O nome do tipo é obrigatório")
		}

		inputType, err := st.FindOrCreateType(body.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o tipo de insumo")
		}
		if body.Color != "" && body.Color != inputType.Color {
			inputType.Color = body.Color
			if err := st.UpdateTypeColor(inputType.ID, body.Color); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o tipo de insumo")
			}
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "input_type",
			EntityID:    inputType.ID,
			Action:      models.AuditActionCreate,
			Description: "Tipo de insumo: " + inputType.Name,
			After:       inputType,
		})

		return c.Status(fiber.StatusCreated).JSON(inputType)
	}
}

// DELETE /api/input-types/:id — removes the type and every family under it.
func DeleteTypeHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		if err := st.DeleteType(uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o tipo de insumo")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "input_type",
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/input-families?type_id=2
func ListFamiliesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		families, err := st.ListFamilies()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as famílias")
		}

		if typeID := c.QueryInt("type_id"); typeID > 0 {
			filtered := make([]models.InputFamily, 0, len(families))
			for _, f := range families {
				if f.InputTypeID == uint(typeID) {
					filtered = append(filtered, f)
				}
			}
			families = filtered
		}

		return c.JSON(families)
	}
}

// POST /api/input-families
func CreateFamilyHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFamilyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Name == "" || body.InputTypeID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e tipo de insumo são obrigatórios")
		}

		family, err := st.FindOrCreateFamily(body.Name, body.InputTypeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar a família")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "input_family",
			EntityID:    family.ID,
			Action:      models.AuditActionCreate,
			Description: "Família: " + family.Name,
			After:       family,
		})

		return c.Status(fiber.StatusCreated).JSON(family)
	}
}

// DELETE /api/input-families/:id
func DeleteFamilyHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		if err := st.DeleteFamily(uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a família")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "input_family",
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
