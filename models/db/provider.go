package dbmodels

import (
	"time"
)

type Provider struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"name"`
	Technology string    `gorm:"type:varchar(100)" json:"technology"`
	Bandwidth  int       `gorm:"not null" json:"bandwidth"` // Mbit/s
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
