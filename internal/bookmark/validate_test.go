package bookmark

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
		wantMsg string
	}{
		{
			name: "valid",
			in:   Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`3`)},
		},
		{
			name: "valid with string rating and description",
			in:   Input{Title: "t", URL: "http://x.test/path?q=1", Description: "d", Rating: json.RawMessage(`"5"`)},
		},
		{
			name: "zero rating is present",
			in:   Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`0`)},
		},

		// Presence, in order title, url, rating.
		{name: "missing title", in: Input{URL: "https://x.test", Rating: json.RawMessage(`3`)}, wantErr: ErrMissingField, wantMsg: "'title' is required"},
		{name: "missing everything reports title", in: Input{}, wantErr: ErrMissingField, wantMsg: "'title' is required"},
		{name: "missing url", in: Input{Title: "t", Rating: json.RawMessage(`3`)}, wantErr: ErrMissingField, wantMsg: "'url' is required"},
		{name: "missing url and rating reports url", in: Input{Title: "t"}, wantErr: ErrMissingField, wantMsg: "'url' is required"},
		{name: "missing rating", in: Input{Title: "t", URL: "https://x.test"}, wantErr: ErrMissingField, wantMsg: "'rating' is required"},
		{name: "null rating", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`null`)}, wantErr: ErrMissingField, wantMsg: "'rating' is required"},
		{name: "empty string rating", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`""`)}, wantErr: ErrMissingField, wantMsg: "'rating' is required"},
		{name: "markup-only title", in: Input{Title: "<script>x</script>", URL: "https://x.test", Rating: json.RawMessage(`3`)}, wantErr: ErrMissingField, wantMsg: "'title' is required"},
		{name: "missing rating wins over bad url", in: Input{Title: "t", URL: "nope"}, wantErr: ErrMissingField, wantMsg: "'rating' is required"},

		// Format.
		{name: "bad url", in: Input{Title: "t", URL: "not a url", Rating: json.RawMessage(`3`)}, wantErr: ErrInvalidURL, wantMsg: "Invalid data"},
		{name: "ftp url", in: Input{Title: "t", URL: "ftp://x.test", Rating: json.RawMessage(`3`)}, wantErr: ErrInvalidURL},
		{name: "bad url wins over bad rating", in: Input{Title: "t", URL: "x.test", Rating: json.RawMessage(`9`)}, wantErr: ErrInvalidURL},
		{name: "rating too high", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`6`)}, wantErr: ErrInvalidRating, wantMsg: "'rating' must be a number between 0 and 5"},
		{name: "rating negative", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`-1`)}, wantErr: ErrInvalidRating},
		{name: "rating fractional", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`2.5`)}, wantErr: ErrInvalidRating},
		{name: "rating not numeric", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`"invalid"`)}, wantErr: ErrInvalidRating},
		{name: "rating object", in: Input{Title: "t", URL: "https://x.test", Rating: json.RawMessage(`{}`)}, wantErr: ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCreate(tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCreate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateCreate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}

func TestValidateCreate_Draft(t *testing.T) {
	got, err := ValidateCreate(Input{
		Title:       "Title",
		URL:         "https://example.com",
		Description: "desc",
		Rating:      json.RawMessage(`"4"`),
	})
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	want := Draft{Title: "Title", URL: "https://example.com", Description: "desc", Rating: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    Patch
		wantErr error
	}{
		{name: "nothing", in: Input{}, wantErr: ErrEmptyPatch},
		{name: "all empty strings", in: Input{Title: "", URL: "", Description: "", Rating: json.RawMessage(`""`)}, wantErr: ErrEmptyPatch},
		{name: "null rating", in: Input{Rating: json.RawMessage(`null`)}, wantErr: ErrEmptyPatch},
		{name: "title only", in: Input{Title: "new"}, want: Patch{Title: ptr("new")}},
		{name: "description only", in: Input{Description: "d"}, want: Patch{Description: ptr("d")}},
		{name: "rating zero", in: Input{Rating: json.RawMessage(`0`)}, want: Patch{Rating: ptr(0)}},
		{name: "rating string", in: Input{Rating: json.RawMessage(`"2"`)}, want: Patch{Rating: ptr(2)}},
		{
			name: "all fields",
			in:   Input{Title: "t", URL: "https://x.test", Description: "d", Rating: json.RawMessage(`1`)},
			want: Patch{Title: ptr("t"), URL: ptr("https://x.test"), Description: ptr("d"), Rating: ptr(1)},
		},
		{name: "bad url", in: Input{URL: "bad"}, wantErr: ErrInvalidURL},
		{name: "markup-only title", in: Input{Title: "<b></b>"}, wantErr: ErrMissingField},
		{name: "title with markup and text", in: Input{Title: "<b>new</b>"}, want: Patch{Title: ptr("<b>new</b>")}},
		{name: "bad rating", in: Input{Title: "t", Rating: json.RawMessage(`"bad"`)}, wantErr: ErrInvalidRating},
		{name: "rating out of range", in: Input{Rating: json.RawMessage(`10`)}, wantErr: ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpdate(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateUpdate() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateUpdate() = %v, want nil", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("patch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateUpdate_EmptyPatchMessage(t *testing.T) {
	_, err := ValidateUpdate(Input{})
	want := "Request body must contain either 'title', 'url', 'description', or 'rating'"
	if err == nil || err.Error() != want {
		t.Errorf("err = %v, want %q", err, want)
	}
}

func TestIsWebURI(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/a/b?c=d#e", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"http://localhost:8080", true},
		{"https://x.test", true},
		{"", false},
		{"example.com", false},
		{"//example.com", false},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"mailto:a@example.com", false},
		{"https://", false},
		{"https://exa mple.com", false},
		{"https://example.com/a b", false},
		{"http:example.com", false},
	}
	for _, tt := range tests {
		if got := IsWebURI(tt.in); got != tt.want {
			t.Errorf("IsWebURI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPatch_Apply(t *testing.T) {
	orig := Bookmark{ID: "1", Title: "old", URL: "https://a.test", Description: "keep", Rating: 2}
	got := Patch{Title: ptr("new")}.Apply(orig)

	want := orig
	want.Title = "new"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if orig.Title != "old" {
		t.Errorf("Apply mutated its argument")
	}
}

func ptr[T any](v T) *T { return &v }
