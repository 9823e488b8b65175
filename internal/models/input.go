package models

import "time"

// InputType - top level of the raw-material taxonomy (PROTEINA, VEGETAIS...)
type InputType struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Color     string `gorm:"size:30"` // UI grouping hint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InputFamily - second level, always belongs to exactly one type.
// Deleting a type takes its families with it.
type InputFamily struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	InputTypeID uint      `gorm:"index;not null"`
	InputType   InputType `gorm:"foreignKey:InputTypeID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InputItem - a purchasable raw material with its loss-corrected cost.
// CorrectedQty and CorrectedPrice are derived: the store recomputes them
// on every write and they are never accepted from a client.
type InputItem struct {
	ID             uint        `gorm:"primaryKey"`
	InputTypeID    uint        `gorm:"index;not null"`
	InputType      InputType   `gorm:"foreignKey:InputTypeID"`
	InputFamilyID  uint        `gorm:"index;not null"`
	InputFamily    InputFamily `gorm:"foreignKey:InputFamilyID"`
	Name           string      `gorm:"size:100;not null"`
	Code           string      `gorm:"size:20;uniqueIndex"` // INSxxxxx, assigned on create
	UnitQty        float64     `gorm:"not null"`
	UnitPrice      float64     `gorm:"not null"`
	LossPercent    float64     `gorm:"not null"` // may be negative (yield gain) or above 100
	CorrectedQty   float64     `gorm:"not null"`
	CorrectedPrice float64     `gorm:"not null"`
	UpdatedAt      time.Time
	CreatedAt      time.Time
}
