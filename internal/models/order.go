package models

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderUser is the customer snapshot captured by the booking flow.
type OrderUser struct {
	Name  string `bun:"name" json:"name"`
	Email string `bun:"email" json:"email"`
	Phone string `bun:"phone" json:"phone"`
	Age   int    `bun:"age" json:"age"`
}

// Slot is the booked time window.
type Slot struct {
	StartTime string `bun:"start_time" json:"startTime"`
	EndTime   string `bun:"end_time" json:"endTime"`
}

// Order is created by the public booking flow. From the admin side it is
// read-only except for the two terminal transitions (complete, cancel).
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:orders"`

	ID   string    `bun:"id,pk" json:"id"`
	User OrderUser `bun:"embed:user_" json:"user"`

	PlanID string `bun:"plan_id" json:"planId"`
	Plan   *Plan  `bun:"rel:belongs-to,join:plan_id=id" json:"plan,omitempty"`

	BookingDate    time.Time `bun:"booking_date" json:"bookingDate"`
	Slot           Slot      `bun:"embed:slot_" json:"slot"`
	Location       string    `bun:"location" json:"location"`
	NumberOfPeople int       `bun:"number_of_people" json:"numberOfPeople"`
	Notes          string    `bun:"notes" json:"notes"`

	Price           float64 `bun:"price" json:"price"`
	DownPayment     float64 `bun:"down_payment" json:"downPayment"`
	PaymentMethod   string  `bun:"payment_method" json:"paymentMethod"`
	PaymentIntentID string  `bun:"payment_intent_id" json:"-"`

	IsCanceled  bool `bun:"is_canceled" json:"isCanceled"`
	IsCompleted bool `bun:"is_completed" json:"isCompleted"`
	IsPaid      bool `bun:"is_paid" json:"isPaid"`
	IsConfirmed bool `bun:"is_confirmed" json:"isConfirmed"`

	// Actor ids recorded when an admin runs a terminal transition.
	CompletedBy string `bun:"completed_by" json:"completedBy,omitempty"`
	CanceledBy  string `bun:"canceled_by" json:"canceledBy,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	// Derived display label, never stored. Populated by the service.
	Status string `bun:"-" json:"status"`
}

// OrderPage is the paginated list response shape the dashboard consumes.
type OrderPage struct {
	Orders       []Order `json:"orders"`
	Pages        int     `json:"pages"`
	Total        int     `json:"total"`
	TotalRevenue float64 `json:"totalRevenue"`
}
