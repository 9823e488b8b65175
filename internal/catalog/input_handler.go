package catalog

import (
	"time"

	"cockpit-backend/internal/audit"
	"cockpit-backend/internal/auth"
	"cockpit-backend/internal/models"
	"cockpit-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InputResponse struct {
	ID             uint    `json:"id"`
	InputTypeID    uint    `json:"tipo_insumo_id"`
	InputFamilyID  uint    `json:"familia_id"`
	Name           string  `json:"insumo"`
	Code           string  `json:"codigo"`
	UnitQty        float64 `json:"qte_unitaria"`
	UnitPrice      float64 `json:"preco"`
	LossPercent    float64 `json:"perda"`
	CorrectedQty   float64 `json:"qte_corrigida"`
	CorrectedPrice float64 `json:"preco_corrigido"`
	UpdatedAt      string  `json:"atualizado_em"`
}

// SaveInputRequest carries type and family by NAME: the save resolves
// them with the find-or-create protocol, so typing a brand new type in
// the form transparently creates it.
type SaveInputRequest struct {
	TypeName    string  `json:"tipo"`
	FamilyName  string  `json:"familia"`
	Name        string  `json:"insumo"`
	UnitQty     float64 `json:"qte_unitaria"`
	UnitPrice   float64 `json:"preco"`
	LossPercent float64 `json:"perda"`
}

func toInputResponse(item models.InputItem) InputResponse {
	return InputResponse{
		ID:             item.ID,
		InputTypeID:    item.InputTypeID,
		InputFamilyID:  item.InputFamilyID,
		Name:           item.Name,
		Code:           item.Code,
		UnitQty:        item.UnitQty,
		UnitPrice:      item.UnitPrice,
		LossPercent:    item.LossPercent,
		CorrectedQty:   item.CorrectedQty,
		CorrectedPrice: item.CorrectedPrice,
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/inputs
func ListInputsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := st.ListInputs()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os insumos")
		}

		resp := make([]InputResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toInputResponse(item))
		}
		return c.JSON(resp)
	}
}

// POST /api/inputs
func CreateInputHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return saveInputHandler(st, db, 0)
}

// PUT /api/inputs/:id
func UpdateInputHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}
		return saveInputHandler(st, db, uint(id))(c)
	}
}

func saveInputHandler(st *store.Store, db *gorm.DB, id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveInputRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name == "" || body.TypeName == "" || body.FamilyName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Preencha todos os campos obrigatórios")
		}
		if body.UnitQty < 0 || body.UnitPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade e preço não podem ser negativos")
		}

		inputType, err := st.FindOrCreateType(body.TypeName)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível resolver o tipo de insumo")
		}
		family, err := st.FindOrCreateFamily(body.FamilyName, inputType.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível resolver a família")
		}

		item := models.InputItem{
			ID:            id,
			InputTypeID:   inputType.ID,
			InputFamilyID: family.ID,
			Name:          body.Name,
			UnitQty:       body.UnitQty,
			UnitPrice:     body.UnitPrice,
			LossPercent:   body.LossPercent,
		}

		action := models.AuditActionCreate
		if id > 0 {
			action = models.AuditActionUpdate
		}

		if err := st.SaveInput(&item); err != nil {
			if err == store.ErrNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Insumo não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o insumo")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "input_item",
			EntityID:    item.ID,
			Action:      action,
			Description: "Insumo: " + item.Name,
			After:       item,
		})

		status := fiber.StatusOK
		if action == models.AuditActionCreate {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(toInputResponse(item))
	}
}

// DELETE /api/inputs/:id
func DeleteInputHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		if err := st.DeleteInput(uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o insumo")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "input_item",
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
