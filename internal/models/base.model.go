package models

import (
	"time"
)

// BaseModel uses integer ids and hard deletes; listings rely on row removal
// for their cascade rules.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"           json:"updatedAt"`
}
