package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Website   string

	Locations []Location `gorm:"foreignKey:BrandID"`

	gorm.Model
}

func (b *Brand) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

type Location struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	BrandID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`
	Address string

	gorm.Model
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
