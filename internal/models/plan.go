package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Image is an uploaded asset reference as returned by the upload endpoints.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// AddOn is an optional extra sold alongside a plan.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Plan struct {
	bun.BaseModel `bun:"table:plans,alias:plans"`

	ID          string  `bun:"id,pk" json:"id"`
	Name        string  `bun:"name" json:"name"`
	Description string  `bun:"description" json:"description"`
	Duration    string  `bun:"duration" json:"duration"`
	Price       float64 `bun:"price" json:"price"`
	CategoryID  string  `bun:"category_id" json:"categoryId"`

	Features []string `bun:"features,array" json:"features"`
	AddOns   []AddOn  `bun:"add_ons,type:jsonb" json:"addOns"`
	Images   []Image  `bun:"images,type:jsonb" json:"images"`

	IsFeatured bool `bun:"is_featured" json:"isFeatured"`
	Published  bool `bun:"published" json:"published"`

	HasDiscount     bool    `bun:"has_discount" json:"hasDiscount"`
	DiscountBy      float64 `bun:"discount_by" json:"discountBy"`
	DiscountedPrice float64 `bun:"discounted_price" json:"discountedPrice"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// PlanPage is the paginated list response shape.
type PlanPage struct {
	Plans []Plan `json:"plans"`
	Pages int    `json:"pages"`
	Total int    `json:"total"`
}

// PlanInput is the create/update request body. The discounted price is
// always recomputed server-side from Price and the discount fields, so a
// client-supplied value is ignored.
type PlanInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
	AddOns      []AddOn  `json:"addOns"`
	Images      []Image  `json:"images"`
	IsFeatured  bool     `json:"isFeatured"`
	Published   bool     `json:"published"`
	HasDiscount bool     `json:"hasDiscount"`
	DiscountBy  float64  `json:"discountBy"`
}
