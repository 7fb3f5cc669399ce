package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareLink struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID `gorm:"type:uuid;index;not null"`
	SurveyEventID uuid.UUID `gorm:"type:uuid;index;not null"`

	Slug     string `gorm:"uniqueIndex;not null"`
	Hits     int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`

	gorm.Model
}

func (s *ShareLink) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
