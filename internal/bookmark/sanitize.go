package bookmark

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and drops script/style content entirely.
// A bluemonday policy is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// angles re-escapes the only characters that could turn text back into markup.
var angles = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize strips markup from free text and returns plain text: quotes and
// ampersands come back as typed, stray angle brackets as &lt; and &gt;.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return angles.Replace(html.UnescapeString(strict.Sanitize(s)))
}

// View is the wire representation of a bookmark.
type View struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// Serialize is the only way a stored bookmark leaves the service.
func Serialize(b *Bookmark) View {
	return View{
		ID:          b.ID,
		Title:       Sanitize(b.Title),
		URL:         b.URL,
		Description: Sanitize(b.Description),
		Rating:      b.Rating,
	}
}

// SerializeAll serializes bs in order. It never returns nil.
func SerializeAll(bs []*Bookmark) []View {
	out := make([]View, 0, len(bs))
	for _, b := range bs {
		out = append(out, Serialize(b))
	}
	return out
}
