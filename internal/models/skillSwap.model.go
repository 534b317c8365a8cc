package models

import (
	"gorm.io/gorm"
)

// SkillSwap is always stored from the listing owner's point of view; see
// OrientSkills for how form input is translated.
type SkillSwap struct {
	BaseModel
	SkillOffered string `gorm:"type:varchar(120);not null"                     json:"skillOffered"`
	SkillWanted  string `gorm:"type:varchar(120);not null"                     json:"skillWanted"`
	UserID       uint   `gorm:"not null;index:idx_skill_swaps_user"            json:"userId"`
	TripID       uint   `gorm:"not null;uniqueIndex:idx_skill_swaps_trip"      json:"tripId"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Trip *Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *SkillSwap) BeforeSave(tx *gorm.DB) error {
	if s.SkillOffered == "" || s.SkillWanted == "" {
		return gorm.ErrInvalidValue
	}
	if s.UserID == 0 || s.TripID == 0 {
		return gorm.ErrInvalidValue
	}
	return nil
}
