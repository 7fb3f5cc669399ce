package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyInvitation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID `gorm:"type:uuid;index;not null"`
	SurveyEventID uuid.UUID `gorm:"type:uuid;index;not null"`
	ContactID     uuid.UUID `gorm:"type:uuid;index;not null"`

	Channel      string `gorm:"type:varchar(20)"`                   // email, sms
	Status       string `gorm:"type:varchar(20);default:'pending'"` // pending, sent, failed
	Token        string `gorm:"uniqueIndex;not null"`
	ErrorMessage string `gorm:"type:text"`
	SentAt       *time.Time

	gorm.Model
}

func (i *SurveyInvitation) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Token == "" {
		i.Token = uuid.NewString()
	}
	return
}
