package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SftpSource is a customer-operated SFTP drop the importer polls for
// contact CSV files.
type SftpSource struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BrandID   *uuid.UUID `gorm:"type:uuid;index"`

	Host      string `gorm:"not null"`
	Port      int    `gorm:"default:22"`
	Username  string `gorm:"not null"`
	Password  string `gorm:"not null"`
	RemoteDir string `gorm:"default:'/'"`
	IsActive  bool   `gorm:"default:true"`

	LastRunAt *time.Time
	LastError string `gorm:"type:text"`

	gorm.Model
}

func (s *SftpSource) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
