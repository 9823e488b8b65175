package models

import "time"

type UserProfile string

const (
	ProfileAdmin UserProfile = "Administrador"
	ProfileUser  UserProfile = "Usuário"
)

type UserStatus string

const (
	UserActive   UserStatus = "Ativo"
	UserInactive UserStatus = "Inativo"
)

// Module ids that can be granted to a user. Administrators implicitly
// hold all of them.
const (
	ModuleInputs  = "cockpit_inputs"
	ModuleBudget  = "cockpit_budget"
	ModuleHistory = "cockpit_history"
	ModuleFull    = "cockpit_full"
	ModuleUsers   = "admin_users"
	ModuleAux     = "aux_tables"
)

func AllModules() []string {
	return []string{
		ModuleInputs,
		ModuleBudget,
		ModuleHistory,
		ModuleFull,
		ModuleUsers,
		ModuleAux,
	}
}

type User struct {
	ID           uint        `gorm:"primaryKey"`
	Usuario      string      `gorm:"size:100;uniqueIndex;not null"` // login key
	Email        string      `gorm:"size:100;not null"`
	PasswordHash string      `gorm:"size:255;not null"`
	Profile      UserProfile `gorm:"size:20;not null"`
	Status       UserStatus  `gorm:"size:20;not null"`
	Modules      []string    `gorm:"serializer:json"` // granted module ids
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasModule reports whether the user may open the given module.
func (u *User) HasModule(module string) bool {
	if u.Profile == ProfileAdmin {
		return true
	}
	for _, m := range u.Modules {
		if m == module {
			return true
		}
	}
	return false
}
