package services

import (
	"github.com/localnerve/socialdb/internal/types"
)

// Listing bounds
const (
	MaxEventPage    = 100
	MaxGroupPage    = 100
	MaxDetailPage   = 200
	DefaultPage     = 20
	DefaultLongPage = 50
)

// Page is a limit/offset window
type Page struct {
	Limit  int
	Offset int
}

// Check rejects a window outside limit ∈ [1,max] and offset ≥ 0
func (p Page) Check(max int) error {
	if p.Limit < 1 || p.Limit > max {
		return types.BadRequest("limit must be between 1 and %d", max)
	}
	if p.Offset < 0 {
		return types.BadRequest("offset must be >= 0")
	}
	return nil
}

// Clamp forces the window into limit ∈ [1,max] and offset ≥ 0
func (p Page) Clamp(max int) Page {
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
