package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	FirstName string
	LastName  string
	Email     *string `gorm:"index"`
	Phone     *string `gorm:"index"`

	PreferredChannel  string `gorm:"type:varchar(20)"` // email, sms, web
	PreferredLanguage string `gorm:"type:varchar(10)"`
	Status            string `gorm:"type:varchar(20);default:'active'"`

	BrandID    *uuid.UUID `gorm:"type:uuid;index"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`

	TagAssignments []ContactTag       `gorm:"foreignKey:ContactID"`
	Invitations    []SurveyInvitation `gorm:"foreignKey:ContactID"`
	Responses      []SurveyResponse   `gorm:"foreignKey:ContactID"`

	gorm.Model
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
