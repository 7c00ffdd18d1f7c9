package xjdp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Feature is one geographic record from the catalog: an internment camp or
// a cultural/religious site. All exported fields are set at construction
// and never mutated afterwards. Data retains the raw detail document so
// callers can reach fields the typed model does not cover.
type Feature struct {
	ID           int             `json:"id"`
	OriginalID   json.RawMessage `json:"original_id"`
	Title        string          `json:"title"`
	Location     Coordinates     `json:"location"`
	Prefecture   string          `json:"prefecture"`
	County       string          `json:"county"`
	Category     Category        `json:"category"`
	CanonicalURL string          `json:"canonical_url"`
	ImageURL     string          `json:"image_url,omitempty"`
	Text         string          `json:"text,omitempty"`
	Data         json.RawMessage `json:"-"`

	mu       sync.Mutex
	image    []byte
	imageSet bool
}

// featureDoc mirrors the upstream detail document. Pointer fields
// distinguish absent keys from zero values; gallery and text stay raw so
// malformed optional fields can degrade instead of failing construction.
type featureDoc struct {
	ID         *int            `json:"ID"`
	OriginalID json.RawMessage `json:"originalID"`
	Title      *string         `json:"title"`
	Coords     []float64       `json:"coords"`
	Prefecture *string         `json:"prefecture"`
	County     *string         `json:"county"`
	Type       *string         `json:"type"`
	Gallery    json.RawMessage `json:"gallery"`
	Text       json.RawMessage `json:"text"`
}

// NewFeature parses a raw detail document into a Feature. It returns a
// MalformedResponseError when the document cannot be decoded or a required
// field is missing; optional fields (gallery, text) never fail and degrade
// to their documented defaults instead. The canonical deep link is built
// on DefaultCanonicalBase; a Catalog can be configured with another base.
func NewFeature(data json.RawMessage) (*Feature, error) {
	return newFeature(data, DefaultCanonicalBase)
}

func newFeature(data json.RawMessage, canonicalBase string) (*Feature, error) {
	var doc featureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	switch {
	case doc.ID == nil:
		return nil, &MalformedResponseError{Field: "ID"}
	case doc.OriginalID == nil:
		return nil, &MalformedResponseError{Field: "originalID"}
	case doc.Title == nil:
		return nil, &MalformedResponseError{Field: "title"}
	case len(doc.Coords) < 2:
		return nil, &MalformedResponseError{Field: "coords"}
	case doc.Prefecture == nil:
		return nil, &MalformedResponseError{Field: "prefecture"}
	case doc.County == nil:
		return nil, &MalformedResponseError{Field: "county"}
	case doc.Type == nil:
		return nil, &MalformedResponseError{Field: "type"}
	}

	return &Feature{
		ID:           *doc.ID,
		OriginalID:   doc.OriginalID,
		Title:        *doc.Title,
		Location:     Coordinates{Lat: doc.Coords[0], Long: doc.Coords[1]},
		Prefecture:   *doc.Prefecture,
		County:       *doc.County,
		Category:     Category(*doc.Type),
		CanonicalURL: canonicalURL(canonicalBase, *doc.ID),
		ImageURL:     galleryImageURL(doc.Gallery),
		Text:         cleanText(docText(doc.Text)),
		Data:         data,
	}, nil
}

// HasImage reports whether the feature's detail record carried satellite
// imagery.
func (f *Feature) HasImage() bool { return f.ImageURL != "" }

func (f *Feature) String() string {
	return fmt.Sprintf("<XJDP %d %s>", f.ID, f.Title)
}

// imageData returns the feature's image bytes, downloading them on the
// first call and memoizing them for the feature's lifetime. Failed
// downloads are not memoized.
func (f *Feature) imageData(ctx context.Context, client Client) ([]byte, error) {
	if !f.HasImage() {
		return nil, ErrNoImage
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.imageSet {
		return f.image, nil
	}

	data, err := client.Download(ctx, f.ImageURL)
	if err != nil {
		return nil, err
	}
	f.image = data
	f.imageSet = true
	return data, nil
}

func canonicalURL(base string, id int) string {
	return fmt.Sprintf("%s?marker=%d&tab=data", base, id)
}

// galleryImageURL extracts the first gallery entry's URL. A gallery that
// is null, missing, empty, or not the expected shape yields no image.
func galleryImageURL(gallery json.RawMessage) string {
	var entries []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(gallery, &entries); err != nil {
		return ""
	}
	if len(entries) == 0 {
		return ""
	}
	return entries[0].URL
}

// docText decodes the optional text field, degrading to empty on a null,
// missing, or non-string value.
func docText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// cleanText repairs known upstream formatting artifacts: a trailing ". ."
// is collapsed to "." and runs of doubled spaces become single spaces.
func cleanText(s string) string {
	if strings.HasSuffix(s, ". .") {
		s = s[:len(s)-2]
	}
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
