package models

import (
	"github.com/google/uuid"
)

type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Name     string    `gorm:"not null"`
	Settings JSONB     `gorm:"type:jsonb;default:'{}'"`

	Users    []User    `gorm:"foreignKey:AccountID"`
	Brands   []Brand   `gorm:"foreignKey:AccountID"`
	Contacts []Contact `gorm:"foreignKey:AccountID"`
	Tags     []Tag     `gorm:"foreignKey:AccountID"`
}
