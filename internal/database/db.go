package database

import (
	"log"

	"cockpit-backend/internal/config"
	"cockpit-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	log.Println("Conexão com o banco estabelecida. Migration concluída.")
	return db
}

// Migrate creates/updates the schema. Shared with the test setup, which
// runs it against an in-memory sqlite instead of Postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InputType{},
		&models.InputFamily{},
		&models.InputItem{},
		&models.Quote{},
		&models.QuoteDiet{},
		&models.QuoteDietItem{},
		&models.AuditLog{},
	)
}
