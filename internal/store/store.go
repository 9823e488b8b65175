// Package store is the persistence collaborator of the pricing core.
// It owns every whole-collection read and write the modules need, so
// handlers never touch gorm directly for catalog or quote data and the
// pricing package stays free of storage concerns.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrClientRequired blocks saving a quote without a client name.
	ErrClientRequired = errors.New("nome do cliente é obrigatório")
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("registro não encontrado")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
