package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TimeSlot is a single bookable window inside a day. Reserved is flipped
// by the public booking flow and is read-only from the admin side.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reserved  bool   `json:"reserved"`
}

// TimeSlotGroup holds all bookable windows of one date.
type TimeSlotGroup struct {
	bun.BaseModel `bun:"table:time_slots"`

	ID        string     `bun:"id,pk" json:"id"`
	Date      time.Time  `bun:"date" json:"date"`
	Times     []TimeSlot `bun:"times,type:jsonb" json:"times"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

type TimeSlotGroupInput struct {
	Date  string     `json:"date"` // YYYY-MM-DD
	Times []TimeSlot `json:"times"`
}
