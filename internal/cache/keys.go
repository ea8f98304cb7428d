package cache

const (
	// KeyPrefixBookmark is the prefix for cached bookmark rows.
	KeyPrefixBookmark = "bookmarks:bookmark:"
)

// BookmarkKey returns the Redis key for a bookmark by ID.
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}
