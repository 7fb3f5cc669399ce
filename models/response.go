package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyResponse struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID `gorm:"type:uuid;index;not null"`
	SurveyEventID uuid.UUID `gorm:"type:uuid;index;not null"`
	ContactID     uuid.UUID `gorm:"type:uuid;index;not null"`

	Score     int    `gorm:"not null"` // 0-10 NPS score
	Comment   string `gorm:"type:text"`
	Category  string `gorm:"type:varchar(40)"` // set by the categorization service
	Sentiment string `gorm:"type:varchar(20)"` // positive, neutral, negative
	Source    string `gorm:"type:varchar(20)"` // invitation, embed, share_link

	gorm.Model
}

func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
