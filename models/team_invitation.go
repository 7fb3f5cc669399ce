package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamInvitation backs the multi-step invite wizard. The draft advances
// through steps (recipient -> role -> scope) before it is sent; accepting
// the token creates the User.
type TeamInvitation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	InvitedBy uuid.UUID `gorm:"type:uuid;not null"`

	Email   string     `gorm:"not null"`
	Role    string     `gorm:"type:varchar(20)"`
	BrandID *uuid.UUID `gorm:"type:uuid"`

	Step      int    `gorm:"default:1"` // 1 recipient, 2 role, 3 scope, 4 sent
	Token     string `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"type:varchar(20);default:'draft'"` // draft, pending, accepted, revoked, expired
	ExpiresAt *time.Time

	gorm.Model
}

func (t *TeamInvitation) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Token == "" {
		t.Token = uuid.NewString()
	}
	return
}
