package models

import "time"

type QuoteStatus string

const (
	QuoteOpen      QuoteStatus = "Em Aberto"
	QuoteLost      QuoteStatus = "Perdida"
	QuoteConcluded QuoteStatus = "Concluída"
)

// Reasons recorded when a quote is marked as lost.
const (
	LostPriceHome       = "Preço: fazer em casa fica mais barato"
	LostNotAdapted      = "Não adaptou a AN"
	LostPriceCompetitor = "Preço: concorrente fez/faz mais barato"
	LostPriceExpensive  = "Preço: achou caro"
	LostTooMuchWork     = "Acha trabalhoso servir a AN"
)

func LostReasons() []string {
	return []string{
		LostPriceHome,
		LostNotAdapted,
		LostPriceCompetitor,
		LostPriceExpensive,
		LostTooMuchWork,
	}
}

// DietCount - every quote carries exactly this many diets, empty or not.
const DietCount = 4

// Quote - a pricing proposal for one client. Code is the human readable
// identifier (COT<year><seq>); re-saving the same code overwrites the
// record but keeps the original QuotedAt.
type Quote struct {
	ID               uint        `gorm:"primaryKey"`
	Code             string      `gorm:"size:20;uniqueIndex;not null"`
	Client           string      `gorm:"size:150"`
	QuotedAt         time.Time   `gorm:"not null"` // creation date, preserved across edits
	Status           QuoteStatus `gorm:"size:30;not null"`
	LostReason       string      `gorm:"size:150"` // only set when Status = Perdida
	Observations     string      `gorm:"size:1000"`
	MarginSimulation float64     // margin % of the first diet, reused for all on reload
	Diets            []QuoteDiet `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// QuoteDiet - one of the four parallel ingredient mixes of a quote.
type QuoteDiet struct {
	ID      uint            `gorm:"primaryKey"`
	QuoteID uint            `gorm:"index;not null"`
	Ordinal int             `gorm:"not null"` // 1..4
	Name    string          `gorm:"size:50;not null"`
	Items   []QuoteDietItem `gorm:"foreignKey:QuoteDietID;constraint:OnDelete:CASCADE"`
}

// QuoteDietItem - used amount (grams) of one input inside a diet.
// Zero or negative amounts are never stored.
type QuoteDietItem struct {
	ID          uint    `gorm:"primaryKey"`
	QuoteDietID uint    `gorm:"index;not null"`
	InputItemID uint    `gorm:"index;not null"`
	Amount      float64 `gorm:"not null"`
}

// ItemMap flattens a diet's line items into input-id -> amount form.
func (d *QuoteDiet) ItemMap() map[uint]float64 {
	m := make(map[uint]float64, len(d.Items))
	for _, it := range d.Items {
		if it.Amount > 0 {
			m[it.InputItemID] = it.Amount
		}
	}
	return m
}
