package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:products"`

	ID          string  `bun:"id,pk" json:"id"`
	Name        string  `bun:"name" json:"name"`
	Description string  `bun:"description" json:"description"`
	CategoryID  string  `bun:"category_id" json:"categoryId"`
	Images      []Image `bun:"images,type:jsonb" json:"images"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Images      []Image `json:"images"`
}

// ProductPage is the paginated list response shape.
type ProductPage struct {
	Products []Product `json:"products"`
	Pages    int       `json:"pages"`
	Total    int       `json:"total"`
}
