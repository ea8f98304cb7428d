package bookmark

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Input is the request body accepted by create and update. Rating stays raw
// so that both 3 and "3" are accepted.
type Input struct {
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	Rating      json.RawMessage `json:"rating" swaggertype:"integer"`
}

// ValidateCreate checks a full create payload. Presence is checked before
// format, always in the order title, url, rating, so a given payload reports
// the same single reason every time. A title made only of markup counts as
// missing, since nothing of it would survive Sanitize.
func ValidateCreate(in Input) (Draft, error) {
	rating, ratingSet, ratingErr := parseRating(in.Rating)

	switch {
	case Sanitize(in.Title) == "":
		return Draft{}, &MissingFieldError{Field: "title"}
	case in.URL == "":
		return Draft{}, &MissingFieldError{Field: "url"}
	case !ratingSet:
		return Draft{}, &MissingFieldError{Field: "rating"}
	}

	if !IsWebURI(in.URL) {
		return Draft{}, ErrInvalidURL
	}
	if ratingErr != nil {
		return Draft{}, ratingErr
	}

	return Draft{
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Rating:      rating,
	}, nil
}

// ValidateUpdate turns a partial payload into a Patch. Empty strings and a
// null rating count as not supplied. Supplied url and rating values are held
// to the same format rules as on create.
func ValidateUpdate(in Input) (Patch, error) {
	rating, ratingSet, ratingErr := parseRating(in.Rating)

	var p Patch
	if in.Title != "" {
		p.Title = &in.Title
	}
	if in.URL != "" {
		p.URL = &in.URL
	}
	if in.Description != "" {
		p.Description = &in.Description
	}
	if p.Empty() && !ratingSet {
		return Patch{}, ErrEmptyPatch
	}

	if p.Title != nil && Sanitize(*p.Title) == "" {
		return Patch{}, &MissingFieldError{Field: "title"}
	}
	if p.URL != nil && !IsWebURI(*p.URL) {
		return Patch{}, ErrInvalidURL
	}
	if ratingSet {
		if ratingErr != nil {
			return Patch{}, ratingErr
		}
		p.Rating = &rating
	}
	return p, nil
}

// IsWebURI reports whether s is an absolute http or https URI with a host.
func IsWebURI(s string) bool {
	if strings.ContainsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return u.Opaque == "" && u.Hostname() != ""
}

// parseRating coerces a raw JSON rating to an int. set is false when the
// value is absent, null, or the empty string.
func parseRating(raw json.RawMessage) (n int, set bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	var f float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, true, ErrInvalidRating
		}
		if s == "" {
			return 0, false, nil
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, true, ErrInvalidRating
		}
	} else if err := json.Unmarshal(raw, &f); err != nil {
		return 0, true, ErrInvalidRating
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, true, ErrInvalidRating
	}
	return int(f), true, nil
}
