package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyEvent is a configured survey trigger: when it fires for a contact,
// an invitation goes out on the event's channel after DelayMinutes.
type SurveyEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BrandID   *uuid.UUID `gorm:"type:uuid;index"`

	Name         string `gorm:"not null"`
	EventKey     string `gorm:"uniqueIndex;not null"`             // public key used by the web embed
	Channel      string `gorm:"type:varchar(20);default:'email'"` // email, sms, web
	DelayMinutes int    `gorm:"default:0"`

	TemplateSubject string
	TemplateBody    string `gorm:"type:text"`
	Metadata        JSONB  `gorm:"type:jsonb;default:'{}'"`
	IsActive        bool   `gorm:"default:true"`

	Invitations []SurveyInvitation `gorm:"foreignKey:SurveyEventID"`
	Responses   []SurveyResponse   `gorm:"foreignKey:SurveyEventID"`
	ShareLinks  []ShareLink        `gorm:"foreignKey:SurveyEventID"`

	gorm.Model
}

func (e *SurveyEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
