package models

import (
	"time"

	"globeswap/internal/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Trip struct {
	BaseModel
	Destination          string         `gorm:"type:varchar(120);not null"        json:"destination"`
	StartDate            datatypes.Date `gorm:"not null"                          json:"startDate"`
	EndDate              datatypes.Date `gorm:"not null"                          json:"endDate"`
	Description          *string        `gorm:"type:text"                         json:"description,omitempty"`
	IsAccommodationOffer bool           `gorm:"type:bool;not null;default:false" json:"isAccommodationOffer"`
	UserID               uint           `gorm:"not null;index:idx_trips_user"     json:"userId"`

	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	SkillSwap    *SkillSwap    `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"skillSwap,omitempty"`
	Interactions []Interaction `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Trip) BeforeSave(tx *gorm.DB) error {
	if t.Destination == "" || t.UserID == 0 {
		return gorm.ErrInvalidValue
	}
	if !DateRangeValid(time.Time(t.StartDate), time.Time(t.EndDate)) {
		return types.ErrValidation
	}
	return nil
}

// ListingType is derived from IsAccommodationOffer, which is the only
// persisted source of truth.
func (t *Trip) ListingType() ListingType {
	return ListingTypeFromOffer(t.IsAccommodationOffer)
}

func (t *Trip) IsOwnedBy(userID uint) bool {
	return t.UserID == userID
}

// DateRangeValid reports whether end falls strictly after start, compared
// as calendar dates.
func DateRangeValid(start, end time.Time) bool {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	startDay := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	endDay := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return endDay.After(startDay)
}
