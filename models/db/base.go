package dbmodels

import (
	"time"
)

// BaseModel is the uuid-keyed base of registry records. Building lists
// are ordered by creation time, hence the index on CreatedAt.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
