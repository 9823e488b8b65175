package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cockpit-backend/internal/models"

	"gorm.io/gorm"
)

func (s *Store) ListQuotes() ([]models.Quote, error) {
	var quotes []models.Quote
	err := s.db.
		Preload("Diets", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		Preload("Diets.Items").
		Order("quoted_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// ListQuoteCodes returns every stored code; the pricing package derives
// the next sequential code from them.
func (s *Store) ListQuoteCodes() ([]string, error) {
	var codes []string
	err := s.db.Model(&models.Quote{}).Pluck("code", &codes).Error
	return codes, err
}

func (s *Store) GetQuoteByCode(code string) (models.Quote, error) {
	var quote models.Quote
	err := s.db.
		Preload("Diets", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		Preload("Diets.Items").
		Where("code = ?", code).
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Quote{}, ErrNotFound
	}
	return quote, err
}

// SaveQuote upserts by code. A re-save replaces every field and the
// full diet tree but keeps the original QuotedAt; only a genuinely new
// quote gets stamped with now. Diets are normalized to exactly four,
// ordinals 1..4, dropping non-positive amounts.
func (s *Store) SaveQuote(q *models.Quote) error {
	if strings.TrimSpace(q.Client) == "" {
		return ErrClientRequired
	}
	if q.Status == "" {
		q.Status = models.QuoteOpen
	}
	q.Diets = normalizeDiets(q.Diets)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Quote
		err := tx.Where("code = ?", q.Code).First(&existing).Error

		switch {
		case err == nil:
			q.ID = existing.ID
			q.QuotedAt = existing.QuotedAt
			q.CreatedAt = existing.CreatedAt

			var dietIDs []uint
			if err := tx.Model(&models.QuoteDiet{}).Where("quote_id = ?", existing.ID).Pluck("id", &dietIDs).Error; err != nil {
				return err
			}
			if len(dietIDs) > 0 {
				if err := tx.Where("quote_diet_id IN ?", dietIDs).Delete(&models.QuoteDietItem{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quote_id = ?", existing.ID).Delete(&models.QuoteDiet{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.Quote{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"client":            q.Client,
				"status":            q.Status,
				"lost_reason":       q.LostReason,
				"observations":      q.Observations,
				"margin_simulation": q.MarginSimulation,
			}).Error; err != nil {
				return err
			}

			for i := range q.Diets {
				q.Diets[i].ID = 0
				q.Diets[i].QuoteID = existing.ID
				for j := range q.Diets[i].Items {
					q.Diets[i].Items[j].ID = 0
					q.Diets[i].Items[j].QuoteDietID = 0
				}
				if err := tx.Create(&q.Diets[i]).Error; err != nil {
					return err
				}
			}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			if q.QuotedAt.IsZero() {
				q.QuotedAt = time.Now()
			}
			return tx.Create(q).Error

		default:
			return err
		}
	})
}

// normalizeDiets pads/truncates to the fixed diet count, strips line
// items with no positive amount and merges repeated input ids into a
// single line so costing and flattening see the same rows.
func normalizeDiets(diets []models.QuoteDiet) []models.QuoteDiet {
	normalized := make([]models.QuoteDiet, models.DietCount)
	lineIndex := make([]map[uint]int, models.DietCount)
	for i := 0; i < models.DietCount; i++ {
		normalized[i] = models.QuoteDiet{
			Ordinal: i + 1,
			Name:    fmt.Sprintf("Dieta %d", i+1),
		}
		lineIndex[i] = make(map[uint]int)
	}

	for _, d := range diets {
		if d.Ordinal < 1 || d.Ordinal > models.DietCount {
			continue
		}
		target := &normalized[d.Ordinal-1]
		if d.Name != "" {
			target.Name = d.Name
		}
		for _, item := range d.Items {
			if item.Amount <= 0 {
				continue
			}
			if idx, ok := lineIndex[d.Ordinal-1][item.InputItemID]; ok {
				target.Items[idx].Amount += item.Amount
				continue
			}
			lineIndex[d.Ordinal-1][item.InputItemID] = len(target.Items)
			target.Items = append(target.Items, models.QuoteDietItem{
				InputItemID: item.InputItemID,
				Amount:      item.Amount,
			})
		}
	}

	return normalized
}
