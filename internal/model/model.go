package model

import (
	"time"

	"github.com/freeeve/war-simulator/pkg/combat"
)

// User represents a registered player.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"` // user, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Army      *Army     `json:"army,omitempty"`
}

// Army is a player's force. Tanks, planes and squads reference it by ID.
type Army struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	UserID        string           `json:"user_id,omitempty"` // empty while unassigned
	Advantage     combat.Advantage `json:"advantage"`
	FuelAmount    int              `json:"fuel_amount"`
	BulletsAmount int              `json:"bullets_amount"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
