package store

import (
	"errors"
	"fmt"
	"strings"

	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"

	"gorm.io/gorm"
)

func (s *Store) ListInputs() ([]models.InputItem, error) {
	var items []models.InputItem
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

func (s *Store) ListTypes() ([]models.InputType, error) {
	var types []models.InputType
	err := s.db.Order("id").Find(&types).Error
	return types, err
}

func (s *Store) ListFamilies() ([]models.InputFamily, error) {
	var families []models.InputFamily
	err := s.db.Order("id").Find(&families).Error
	return families, err
}

// FindOrCreateType resolves a type by trimmed, case-insensitive name,
// creating it when no match exists. The matching rule lives here and
// nowhere else.
func (s *Store) FindOrCreateType(name string) (models.InputType, error) {
	name = strings.TrimSpace(name)

	var t models.InputType
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&t).Error
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InputType{}, err
	}

	t = models.InputType{Name: name, Color: "bg-white"}
	err = s.db.Create(&t).Error
	return t, err
}

// FindOrCreateFamily works like FindOrCreateType, scoped to the parent
// type: the same family name may exist under different types.
func (s *Store) FindOrCreateFamily(name string, typeID uint) (models.InputFamily, error) {
	name = strings.TrimSpace(name)

	var f models.InputFamily
	err := s.db.Where("LOWER(name) = LOWER(?) AND input_type_id = ?", name, typeID).First(&f).Error
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InputFamily{}, err
	}

	f = models.InputFamily{Name: name, InputTypeID: typeID}
	err = s.db.Create(&f).Error
	return f, err
}

func (s *Store) UpdateTypeColor(id uint, color string) error {
	return s.db.Model(&models.InputType{}).Where("id = ?", id).Update("color", color).Error
}

// DeleteType removes a type and every family under it. Inputs that
// referenced the type are left in place; flattening and costing simply
// skip the dangling taxonomy.
func (s *Store) DeleteType(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("input_type_id = ?", id).Delete(&models.InputFamily{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InputType{}, id).Error
	})
}

func (s *Store) DeleteFamily(id uint) error {
	return s.db.Delete(&models.InputFamily{}, id).Error
}

// SaveInput upserts a raw material. The corrected quantity and price
// are always recomputed from the submitted quantity, price and loss;
// values sent by a client are discarded. New items get their INS code
// from the generated id.
func (s *Store) SaveInput(item *models.InputItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.CorrectedQty, item.CorrectedPrice = pricing.Correct(item.UnitQty, item.UnitPrice, item.LossPercent)

	if item.ID == 0 {
		if err := s.db.Create(item).Error; err != nil {
			return err
		}
		item.Code = fmt.Sprintf("INS%05d", item.ID)
		return s.db.Model(item).Update("code", item.Code).Error
	}

	var existing models.InputItem
	if err := s.db.First(&existing, item.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	item.Code = existing.Code
	item.CreatedAt = existing.CreatedAt

	return s.db.Model(&models.InputItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"input_type_id":   item.InputTypeID,
		"input_family_id": item.InputFamilyID,
		"name":            item.Name,
		"unit_qty":        item.UnitQty,
		"unit_price":      item.UnitPrice,
		"loss_percent":    item.LossPercent,
		"corrected_qty":   item.CorrectedQty,
		"corrected_price": item.CorrectedPrice,
	}).Error
}

func (s *Store) DeleteInput(id uint) error {
	return s.db.Delete(&models.InputItem{}, id).Error
}
