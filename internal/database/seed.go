package database

import (
	"fmt"
	"log"

	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedInput struct {
	typeName string
	family   string
	name     string
	unitQty  float64
	price    float64
	loss     float64
}

// Seed loads the initial catalog and the bootstrap admin the first time
// the system comes up. It is a no-op when data already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.InputType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Banco vazio: carregando catálogo inicial de insumos...")

	typeIDs := map[string]uint{}
	for _, name := range []string{"PROTEINA", "VICERAS", "VEGETAIS", "CARBOIDRATOS", "SUPLEMENTOS"} {
		t := models.InputType{Name: name, Color: "bg-white"}
		if err := db.Create(&t).Error; err != nil {
			return err
		}
		typeIDs[name] = t.ID
	}

	familyIDs := map[string]uint{}
	families := []struct{ typeName, name string }{
		{"PROTEINA", "Bovinos"}, {"PROTEINA", "Cordeiro"}, {"PROTEINA", "Aves"},
		{"PROTEINA", "Suinos"}, {"PROTEINA", "Peixes"},
		{"VICERAS", "Aves"}, {"VICERAS", "Bovinos"},
		{"VEGETAIS", "Verdes"}, {"VEGETAIS", "Roxo"}, {"VEGETAIS", "Laranja"}, {"VEGETAIS", "Amarelo"},
		{"CARBOIDRATOS", "Branco"}, {"CARBOIDRATOS", "Integral"}, {"CARBOIDRATOS", "Batatas"}, {"CARBOIDRATOS", "Outros"},
		{"SUPLEMENTOS", "Suplementos"},
	}
	for _, f := range families {
		fam := models.InputFamily{Name: f.name, InputTypeID: typeIDs[f.typeName]}
		if err := db.Create(&fam).Error; err != nil {
			return err
		}
		familyIDs[f.typeName+"/"+f.name] = fam.ID
	}

	inputs := []seedInput{
		{"PROTEINA", "Bovinos", "Alcatra", 1, 33.99, 45},
		{"PROTEINA", "Cordeiro", "Cordeiro", 1, 67.6, 30},
		{"PROTEINA", "Bovinos", "Coxao Duro", 1, 0, 45},
		{"PROTEINA", "Bovinos", "Coxao Mole", 1, 33.9, 45},
		{"PROTEINA", "Aves", "File Frango", 1, 14.19, 20},
		{"PROTEINA", "Suinos", "File Suino", 1, 20, 3},
		{"PROTEINA", "Suinos", "Lombo Suino", 1, 19.8, 20},
		{"PROTEINA", "Peixes", "Merluza", 1, 36.6, 24},
		{"PROTEINA", "Bovinos", "Musculo", 1, 23.99, 29.33},
		{"PROTEINA", "Bovinos", "Patinho", 1, 33.63, 14.11},
		{"PROTEINA", "Peixes", "Salmao", 1, 0, 20},
		{"PROTEINA", "Aves", "Ovo - Gramas", 1, 28.87, 0},
		{"PROTEINA", "Aves", "Ovo - Unidade", 1, 0.87, 0},
		{"PROTEINA", "Aves", "Ovo - Codorna", 1, 0.55, 0},
		{"PROTEINA", "Aves", "Ovo - Clara", 1, 0.55, 0},
		{"PROTEINA", "Suinos", "Pernil Suino", 1, 17.9, 30},
		{"PROTEINA", "Aves", "Sobrecoxa", 1, 10.99, 5},
		{"PROTEINA", "Peixes", "Tilapia", 1, 40, 28.5},
		{"VICERAS", "Aves", "Coracao Frango", 1, 18.56, 10},
		{"VICERAS", "Bovinos", "Coracao Boi", 1, 11.1, 10},
		{"VICERAS", "Bovinos", "Figado Bovino", 1, 8.99, 2.98},
		{"VICERAS", "Aves", "Figado Frango", 1, 1.99, 10},
		{"VICERAS", "Aves", "Moela", 1, 6.99, 50},
		{"VICERAS", "Aves", "Pescoco Frango", 1, 7.99, 0},
		{"VEGETAIS", "Verdes", "Abobrinha", 1, 4.99, 35},
		{"VEGETAIS", "Roxo", "Beterraba", 1, 2.99, 35},
		{"VEGETAIS", "Verdes", "Beringela", 1, 5.5, 35},
		{"VEGETAIS", "Verdes", "Brocolis", 1, 16.5, 35},
		{"VEGETAIS", "Laranja", "Cabotia", 1, 4.99, 35},
		{"VEGETAIS", "Laranja", "Cenoura", 1, 2.99, 35},
		{"VEGETAIS", "Amarelo", "Couve Flor", 1, 24, 35},
		{"VEGETAIS", "Verdes", "Couve Manteiga", 1, 11.7, 35},
		{"VEGETAIS", "Verdes", "Chuchu", 1, 4.75, 35},
		{"VEGETAIS", "Verdes", "Ervilhas", 1, 15.9, 35},
		{"VEGETAIS", "Verdes", "Espinafre", 1, 15, 35},
		{"VEGETAIS", "Verdes", "Quiabo", 1, 9, 35},
		{"VEGETAIS", "Verdes", "Jilo", 1, 8.9, 35},
		{"VEGETAIS", "Verdes", "Vagem", 1, 18.9, 35},
		{"CARBOIDRATOS", "Branco", "Arroz Branco", 1, 6.29, -90},
		{"CARBOIDRATOS", "Integral", "Arroz Integral", 1, 5.99, -40},
		{"CARBOIDRATOS", "Batatas", "Batata Doce", 1, 3.99, 3.17},
		{"CARBOIDRATOS", "Batatas", "Batata Doce Branca", 1, 4, 3.17},
		{"CARBOIDRATOS", "Batatas", "Batata Inglesa", 1, 2.99, 3},
		{"CARBOIDRATOS", "Outros", "Inhame", 1, 12.99, 3},
		{"CARBOIDRATOS", "Outros", "Mandioca", 1, 7.99, 3},
		{"CARBOIDRATOS", "Outros", "Mandioquinha", 1, 10.99, 12},
		{"SUPLEMENTOS", "Suplementos", "Primusplus Zero Fosforo", 0.5, 118.19, 0},
		{"SUPLEMENTOS", "Suplementos", "Nutroplus Senior", 0.5, 134.06, 0},
		{"SUPLEMENTOS", "Suplementos", "Primusplus Adultos", 0.5, 127.53, 0},
	}
	for _, s := range inputs {
		cq, cp := pricing.Correct(s.unitQty, s.price, s.loss)
		item := models.InputItem{
			InputTypeID:    typeIDs[s.typeName],
			InputFamilyID:  familyIDs[s.typeName+"/"+s.family],
			Name:           s.name,
			UnitQty:        s.unitQty,
			UnitPrice:      s.price,
			LossPercent:    s.loss,
			CorrectedQty:   cq,
			CorrectedPrice: cp,
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		item.Code = fmt.Sprintf("INS%05d", item.ID)
		if err := db.Model(&item).Update("code", item.Code).Error; err != nil {
			return err
		}
	}

	// Bootstrap admin, same credentials the legacy system shipped with.
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("Admin85#"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Usuario:      "Admin",
			Email:        "admin@sistema.com",
			PasswordHash: string(hash),
			Profile:      models.ProfileAdmin,
			Status:       models.UserActive,
			Modules:      models.AllModules(),
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Usuário Admin inicial criado.")
	}

	return nil
}
