package main

import (
	"log"
	"strings"

	"cockpit-backend/internal/admin"
	"cockpit-backend/internal/analytics"
	"cockpit-backend/internal/audit"
	"cockpit-backend/internal/auth"
	"cockpit-backend/internal/catalog"
	"cockpit-backend/internal/config"
	"cockpit-backend/internal/database"
	"cockpit-backend/internal/models"
	"cockpit-backend/internal/quotes"
	"cockpit-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	cfg := config.Load()
	db := database.Init(cfg)
	if err := database.Seed(db); err != nil {
		log.Fatal("[FATAL] Não foi possível popular os dados iniciais:", err)
	}
	st := store.New(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Gestão de usuários (somente administradores)
	users := protected.Group("/users")
	users.Use(auth.RequireProfile(models.ProfileAdmin))
	users.Get("/", admin.ListUsersHandler(db))
	users.Post("/", admin.CreateUserHandler(db))
	users.Put("/:id", admin.UpdateUserHandler(db))
	users.Delete("/:id", admin.DeleteUserHandler(db))

	// Catálogo de insumos
	inputs := protected.Group("/inputs")
	inputs.Use(auth.RequireModule(models.ModuleInputs))
	inputs.Get("/", catalog.ListInputsHandler(st))
	inputs.Post("/", catalog.CreateInputHandler(st, db))
	inputs.Put("/:id", catalog.UpdateInputHandler(st, db))
	inputs.Delete("/:id", catalog.DeleteInputHandler(st, db))

	// Tabelas auxiliares (tipos e famílias)
	aux := protected.Group("")
	aux.Use(auth.RequireModule(models.ModuleAux))
	aux.Get("/input-types", catalog.ListTypesHandler(st))
	aux.Post("/input-types", catalog.CreateTypeHandler(st, db))
	aux.Delete("/input-types/:id", catalog.DeleteTypeHandler(st, db))
	aux.Get("/input-families", catalog.ListFamiliesHandler(st))
	aux.Post("/input-families", catalog.CreateFamilyHandler(st, db))
	aux.Delete("/input-families/:id", catalog.DeleteFamilyHandler(st, db))

	// Cotações. Leitura também liberada para o módulo de histórico,
	// que é a listagem somente-leitura das cotações.
	budget := protected.Group("/quotes")
	canRead := auth.RequireAnyModule(models.ModuleBudget, models.ModuleHistory)
	budget.Get("/next-code", auth.RequireModule(models.ModuleBudget), quotes.NextQuoteCodeHandler(st))
	budget.Post("/simulate", auth.RequireModule(models.ModuleBudget), quotes.SimulateHandler(st))
	budget.Get("/", canRead, quotes.ListQuotesHandler(st))
	budget.Get("/:code", canRead, quotes.GetQuoteHandler(st))
	budget.Post("/", auth.RequireModule(models.ModuleBudget), quotes.SaveQuoteHandler(st, db))

	// Visão analítica e exportações
	full := protected.Group("/quotes-full")
	full.Use(auth.RequireModule(models.ModuleFull))
	full.Get("/", analytics.ListFullQuotesHandler(st))
	full.Get("/export", analytics.ExportCSVHandler(st))
	full.Get("/export/xlsx", analytics.ExportXLSXHandler(st))

	// Audit logs
	protected.Get("/audit-logs", auth.RequireProfile(models.ProfileAdmin), audit.ListAuditLogsHandler(db))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
