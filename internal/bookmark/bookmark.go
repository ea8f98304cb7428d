// Package bookmark holds the bookmark entity together with the validation
// and sanitization rules every request path goes through.
package bookmark

import "time"

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Description string    `db:"description"`
	Rating      int       `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Draft is a validated create payload. It carries no id; the store assigns one.
type Draft struct {
	Title       string
	URL         string
	Description string
	Rating      int
}

// Patch is a validated sparse update. Nil fields leave the stored value untouched.
type Patch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil && p.Rating == nil
}

// Apply returns a copy of b with the patch's set fields overwritten.
func (p Patch) Apply(b Bookmark) Bookmark {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	return b
}
