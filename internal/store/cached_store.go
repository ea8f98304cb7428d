package store

import (
	"context"

	"github.com/joestump/joe-bookmarks/internal/bookmark"
	"github.com/joestump/joe-bookmarks/internal/logger"
)

// BookmarkCache is a read-through cache keyed by bookmark id. Get returns
// (nil, nil) on a miss.
type BookmarkCache interface {
	Get(ctx context.Context, id string) (*bookmark.Bookmark, error)
	Set(ctx context.Context, b *bookmark.Bookmark) error
	Delete(ctx context.Context, id string) error
}

// CachedBookmarkStore puts a BookmarkCache in front of another store.
// Cache errors are logged and otherwise ignored; the wrapped store stays the
// source of truth, and only it can report ErrNotFound.
type CachedBookmarkStore struct {
	next  BookmarkStoreIface
	cache BookmarkCache
	log   logger.Logger
}

func NewCachedBookmarkStore(next BookmarkStoreIface, cache BookmarkCache, log logger.Logger) *CachedBookmarkStore {
	return &CachedBookmarkStore{next: next, cache: cache, log: log}
}

func (s *CachedBookmarkStore) ListAll(ctx context.Context) ([]*bookmark.Bookmark, error) {
	return s.next.ListAll(ctx)
}

func (s *CachedBookmarkStore) GetByID(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	b, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn("bookmark cache get failed", logger.String("id", id), logger.Error(err))
	}
	if b != nil {
		return b, nil
	}

	b, err = s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, b)
	return b, nil
}

func (s *CachedBookmarkStore) Insert(ctx context.Context, d bookmark.Draft) (*bookmark.Bookmark, error) {
	b, err := s.next.Insert(ctx, d)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, b)
	return b, nil
}

func (s *CachedBookmarkStore) Update(ctx context.Context, id string, p bookmark.Patch) (int64, error) {
	n, err := s.next.Update(ctx, id, p)
	if err != nil {
		return n, err
	}
	s.evict(ctx, id)
	return n, nil
}

func (s *CachedBookmarkStore) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.next.Delete(ctx, id)
	if err != nil {
		return ok, err
	}
	s.evict(ctx, id)
	return ok, nil
}

func (s *CachedBookmarkStore) fill(ctx context.Context, b *bookmark.Bookmark) {
	if err := s.cache.Set(ctx, b); err != nil {
		s.log.Warn("bookmark cache set failed", logger.String("id", b.ID), logger.Error(err))
	}
}

func (s *CachedBookmarkStore) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("bookmark cache delete failed", logger.String("id", id), logger.Error(err))
	}
}
