package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_account_tag_name,priority:1"`
	Name      string    `gorm:"not null;uniqueIndex:idx_account_tag_name,priority:2"`
	Color     string    `gorm:"type:varchar(20)"`

	Assignments []ContactTag `gorm:"foreignKey:TagID"`

	gorm.Model
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// ContactTag is the contact <-> tag join row. Merge moves these from
// secondary contacts onto the surviving primary.
type ContactTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contact_tag,priority:1"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contact_tag,priority:2"`

	gorm.Model
}

func (ct *ContactTag) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}
