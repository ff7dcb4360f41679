// Package model defines the persistence schema of the back-office service.
package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel carries the identity and audit columns shared by every table.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
