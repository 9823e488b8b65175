// Package analytics serves the denormalized quote view and its file
// exports.
package analytics

import (
	"fmt"
	"time"

	"cockpit-backend/internal/pricing"
	"cockpit-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func flatRows(st *store.Store) ([]pricing.FlatRow, error) {
	quotes, err := st.ListQuotes()
	if err != nil {
		return nil, err
	}
	inputs, err := st.ListInputs()
	if err != nil {
		return nil, err
	}
	types, err := st.ListTypes()
	if err != nil {
		return nil, err
	}
	families, err := st.ListFamilies()
	if err != nil {
		return nil, err
	}
	return pricing.Flatten(quotes, inputs, types, families), nil
}

// GET /api/quotes-full
func ListFullQuotesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := flatRows(st)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar a visão analítica")
		}
		if rows == nil {
			rows = []pricing.FlatRow{}
		}
		return c.JSON(rows)
	}
}

// GET /api/quotes-full/export
func ExportCSVHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := flatRows(st)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a exportação")
		}

		filename := fmt.Sprintf("cotacoes_full_%s.csv", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(BuildCSV(rows))
	}
}

// GET /api/quotes-full/export/xlsx
func ExportXLSXHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := flatRows(st)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a exportação")
		}

		file, err := BuildXLSX(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
		}
		defer file.Close()

		filename := fmt.Sprintf("cotacoes_full_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

		if _, err := file.WriteTo(c.Response().BodyWriter()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível enviar a planilha")
		}
		return nil
	}
}
