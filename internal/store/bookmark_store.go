package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/joe-bookmarks/internal/bookmark"
)

const bookmarkColumns = `id, title, url, description, rating, created_at, updated_at`

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
// Queries are written with ? placeholders and rebound for the open driver.
type BookmarkStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// ListAll returns every bookmark in insertion order.
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*bookmark.Bookmark, error) {
	bms := []*bookmark.Bookmark{}
	err := s.db.SelectContext(ctx, &bms, `SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bms, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	var b bookmark.Bookmark
	err := s.db.GetContext(ctx, &b, s.db.Rebind(`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %s: %w", id, err)
	}
	return &b, nil
}

// Insert persists d under a freshly generated id and returns the stored row.
func (s *BookmarkStore) Insert(ctx context.Context, d bookmark.Draft) (*bookmark.Bookmark, error) {
	id := uuid.New().String()
	now := s.now()

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO bookmarks (id, title, url, description, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, d.Title, d.URL, d.Description, d.Rating, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Update writes the set fields of p onto the bookmark matching id and
// returns the number of rows affected. Returns ErrNotFound if id is unknown.
func (s *BookmarkStore) Update(ctx context.Context, id string, p bookmark.Patch) (int64, error) {
	if p.Empty() {
		return 0, bookmark.ErrEmptyPatch
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.GetContext(ctx, &existing, tx.Rebind(`SELECT id FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup bookmark %s: %w", id, err)
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *p.URL)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.now(), id)

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE bookmarks SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return 0, fmt.Errorf("update bookmark %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update bookmark %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit update: %w", err)
	}
	return n, nil
}

// Delete removes the bookmark matching id and reports whether a row was removed.
func (s *BookmarkStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete bookmark %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bookmark %s: %w", id, err)
	}
	return n > 0, nil
}

// Count returns the number of stored bookmarks.
func (s *BookmarkStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}

// Ping reports whether the database is reachable.
func (s *BookmarkStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
