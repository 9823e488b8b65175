// Package quotes exposes the HTTP surface for creating, listing and
// simulating pricing quotes.
package quotes

import (
	"time"

	"cockpit-backend/internal/audit"
	"cockpit-backend/internal/auth"
	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"
	"cockpit-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DietItemPayload struct {
	InputItemID uint    `json:"insumo_id"`
	Amount      float64 `json:"quantidade"`
}

type DietPayload struct {
	Ordinal int               `json:"ordem"`
	Name    string            `json:"nome"`
	Items   []DietItemPayload `json:"itens"`
}

type SaveQuoteRequest struct {
	Code         string        `json:"codigo"`
	Client       string        `json:"cliente"`
	Status       string        `json:"status"`
	LostReason   string        `json:"motivo_perda"`
	Observations string        `json:"observacoes"`
	Margin       float64       `json:"margem"`
	Diets        []DietPayload `json:"dietas"`
}

type QuoteResponse struct {
	ID           uint                               `json:"id"`
	Code         string                             `json:"codigo"`
	Client       string                             `json:"cliente"`
	QuotedAt     string                             `json:"data"`
	Status       models.QuoteStatus                 `json:"status"`
	LostReason   string                             `json:"motivo_perda,omitempty"`
	Observations string                             `json:"observacoes,omitempty"`
	Margin       float64                            `json:"margem"`
	Diets        []DietPayload                      `json:"dietas"`
	Costs        [models.DietCount]pricing.DietCost `json:"custos"`
}

type SimulateRequest struct {
	Margin      float64             `json:"margem"`
	Diets       []DietPayload       `json:"dietas"`
	Proportions pricing.Proportions `json:"proporcoes"`
}

type SimulateResponse struct {
	Costs  [models.DietCount]pricing.DietCost   `json:"custos"`
	Rows   [models.DietCount]pricing.PackageRow `json:"pacote"`
	Totals pricing.PackageTotals                `json:"totais"`
}

func toModelDiets(payloads []DietPayload) []models.QuoteDiet {
	diets := make([]models.QuoteDiet, 0, len(payloads))
	for _, p := range payloads {
		d := models.QuoteDiet{Ordinal: p.Ordinal, Name: p.Name}
		for _, it := range p.Items {
			d.Items = append(d.Items, models.QuoteDietItem{
				InputItemID: it.InputItemID,
				Amount:      it.Amount,
			})
		}
		diets = append(diets, d)
	}
	return diets
}

func computeCosts(q models.Quote, catalog []models.InputItem) [models.DietCount]pricing.DietCost {
	var costs [models.DietCount]pricing.DietCost
	for _, d := range q.Diets {
		if d.Ordinal < 1 || d.Ordinal > models.DietCount {
			continue
		}
		costs[d.Ordinal-1] = pricing.CostDiet(d.ItemMap(), catalog, q.MarginSimulation)
	}
	return costs
}

func toQuoteResponse(q models.Quote, catalog []models.InputItem) QuoteResponse {
	resp := QuoteResponse{
		ID:           q.ID,
		Code:         q.Code,
		Client:       q.Client,
		QuotedAt:     q.QuotedAt.Format(time.RFC3339),
		Status:       q.Status,
		LostReason:   q.LostReason,
		Observations: q.Observations,
		Margin:       q.MarginSimulation,
		Costs:        computeCosts(q, catalog),
	}
	for _, d := range q.Diets {
		dp := DietPayload{Ordinal: d.Ordinal, Name: d.Name, Items: []DietItemPayload{}}
		for _, it := range d.Items {
			dp.Items = append(dp.Items, DietItemPayload{InputItemID: it.InputItemID, Amount: it.Amount})
		}
		resp.Diets = append(resp.Diets, dp)
	}
	return resp
}

func validStatus(s string) bool {
	switch models.QuoteStatus(s) {
	case models.QuoteOpen, models.QuoteLost, models.QuoteConcluded:
		return true
	}
	return false
}

func validLostReason(r string) bool {
	for _, known := range models.LostReasons() {
		if r == known {
			return true
		}
	}
	return false
}

// GET /api/quotes?status=Perdida
func ListQuotesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := st.ListQuotes()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as cotações")
		}

		if status := c.Query("status"); status != "" {
			filtered := make([]models.Quote, 0, len(all))
			for _, q := range all {
				if string(q.Status) == status {
					filtered = append(filtered, q)
				}
			}
			all = filtered
		}

		catalog, err := st.ListInputs()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o catálogo de insumos")
		}

		resp := make([]QuoteResponse, 0, len(all))
		for _, q := range all {
			resp = append(resp, toQuoteResponse(q, catalog))
		}
		return c.JSON(resp)
	}
}

// GET /api/quotes/next-code
func NextQuoteCodeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		codes, err := st.ListQuoteCodes()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o próximo código")
		}
		return c.JSON(fiber.Map{"codigo": pricing.NextQuoteCode(codes, time.Now())})
	}
}

// GET /api/quotes/:code
func GetQuoteHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quote, err := st.GetQuoteByCode(c.Params("code"))
		if err != nil {
			if err == store.ErrNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Cotação não encontrada.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar a cotação")
		}

		catalog, err := st.ListInputs()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o catálogo de insumos")
		}
		return c.JSON(toQuoteResponse(quote, catalog))
	}
}

// POST /api/quotes — upsert by code. A request without a code gets the
// next sequential one.
func SaveQuoteHandler(st *store.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveQuoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Status != "" && !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
		}
		if models.QuoteStatus(body.Status) == models.QuoteLost && !validLostReason(body.LostReason) {
			return fiber.NewError(fiber.StatusBadRequest, "Informe o motivo da perda")
		}
		if models.QuoteStatus(body.Status) != models.QuoteLost {
			body.LostReason = ""
		}

		if body.Code == "" {
			codes, err := st.ListQuoteCodes()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o próximo código")
			}
			body.Code = pricing.NextQuoteCode(codes, time.Now())
		}

		quote := models.Quote{
			Code:             body.Code,
			Client:           body.Client,
			Status:           models.QuoteStatus(body.Status),
			LostReason:       body.LostReason,
			Observations:     body.Observations,
			MarginSimulation: body.Margin,
			Diets:            toModelDiets(body.Diets),
		}

		if err := st.SaveQuote(&quote); err != nil {
			if err == store.ErrClientRequired {
				return fiber.NewError(fiber.StatusBadRequest, "O campo 'Nome do Cliente' é obrigatório.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar a cotação")
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "quote",
			EntityID:    quote.ID,
			Action:      models.AuditActionUpdate,
			Description: "Cotação: " + quote.Code,
			After:       body,
		})

		catalog, err := st.ListInputs()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o catálogo de insumos")
		}
		return c.JSON(toQuoteResponse(quote, catalog))
	}
}

// POST /api/quotes/simulate — prices a draft without persisting it.
func SimulateHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SimulateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		catalog, err := st.ListInputs()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o catálogo de insumos")
		}

		draft := models.Quote{
			MarginSimulation: body.Margin,
			Diets:            toModelDiets(body.Diets),
		}
		costs := computeCosts(draft, catalog)
		rows, totals := pricing.Rollup(costs, body.Proportions)

		return c.JSON(SimulateResponse{Costs: costs, Rows: rows, Totals: totals})
	}
}
