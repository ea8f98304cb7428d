package store

import (
	"context"
	"errors"

	"github.com/joestump/joe-bookmarks/internal/bookmark"
)

// ErrNotFound is returned when a requested bookmark does not exist. It is
// never returned for a failing database.
var ErrNotFound = errors.New("not found")

// BookmarkStoreIface exposes all bookmark data operations.
// No handler may query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	ListAll(ctx context.Context) ([]*bookmark.Bookmark, error)
	GetByID(ctx context.Context, id string) (*bookmark.Bookmark, error)
	Insert(ctx context.Context, d bookmark.Draft) (*bookmark.Bookmark, error)
	Update(ctx context.Context, id string, p bookmark.Patch) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var (
	_ BookmarkStoreIface = (*BookmarkStore)(nil)
	_ BookmarkStoreIface = (*CachedBookmarkStore)(nil)
)
