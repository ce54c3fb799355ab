package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Category is one node of the classification forest, stored as an
// adjacency list. ParentID is empty for root categories.
type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name" json:"name"`
	ParentID  string    `bun:"parent_id" json:"parentId"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}
