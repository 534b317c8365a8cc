package models

import (
	"strings"

	"globeswap/internal/types"

	"gorm.io/gorm"
)

type InteractionStatus string

const (
	InteractionStatusPending  InteractionStatus = "Pending"
	InteractionStatusAccepted InteractionStatus = "Accepted"
	InteractionStatusRejected InteractionStatus = "Rejected"
)

func ParseInteractionStatus(value string) (InteractionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return InteractionStatusPending, true
	case "accepted", "accept":
		return InteractionStatusAccepted, true
	case "rejected", "reject":
		return InteractionStatusRejected, true
	}
	return "", false
}

func (s InteractionStatus) IsTerminal() bool {
	return s == InteractionStatusAccepted || s == InteractionStatusRejected
}

// CanTransitionTo allows only Pending -> Accepted and Pending -> Rejected.
func (s InteractionStatus) CanTransitionTo(next InteractionStatus) bool {
	return s == InteractionStatusPending && next.IsTerminal()
}

type Interaction struct {
	BaseModel
	TripID      uint              `gorm:"not null;index:idx_interactions_trip"               json:"tripId"`
	SenderID    uint              `gorm:"not null;index:idx_interactions_sender"             json:"senderId"`
	RecipientID uint              `gorm:"not null;index:idx_interactions_recipient"          json:"recipientId"`
	Message     string            `gorm:"type:text"                                          json:"message"`
	Status      InteractionStatus `gorm:"type:varchar(20);not null;default:'Pending'"       json:"status"`

	Trip      *Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"      json:"trip,omitempty"`
	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"    json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.TripID == 0 || i.SenderID == 0 || i.RecipientID == 0 {
		return gorm.ErrInvalidValue
	}
	if i.SenderID == i.RecipientID {
		return types.ErrSelfInteraction
	}
	if i.Status == "" {
		i.Status = InteractionStatusPending
	}
	if i.Status != InteractionStatusPending {
		return types.ErrInvalidTransition
	}
	return nil
}
