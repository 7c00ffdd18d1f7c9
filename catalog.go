package xjdp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
)

const (
	markersPath   = "map/markers.geo.json"
	detailPathFmt = "map/%s/%d.json"

	markersCacheKey = "markers"
)

// Marker is one entry in the catalog's marker index: a feature's identity
// and point geometry without the full detail record.
type Marker struct {
	Type       string           `json:"type"`
	Properties MarkerProperties `json:"properties"`
	Geometry   json.RawMessage  `json:"geometry"`
}

// MarkerProperties carries the marker attributes the catalog filters on.
type MarkerProperties struct {
	ID   int    `json:"ID"`
	Type string `json:"type"`
}

// markersDoc mirrors the upstream marker index, a GeoJSON feature
// collection.
type markersDoc struct {
	Type     string   `json:"type"`
	Features []Marker `json:"features"`
}

// Catalog retrieves and models catalog records on top of a Client.
// Marker indexes and feature details are fetched once and memoized for
// the catalog's lifetime; ClearCache discards them. A Catalog is safe
// for concurrent use, though concurrent first requests for the same
// record may each fetch it.
type Catalog struct {
	client        Client
	canonicalBase string
	markers       *cache.Cache
	details       *cache.Cache

	// randIntN is swapped out by tests.
	randIntN func(n int) int
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithCatalogClient sets the Client used for upstream requests.
func WithCatalogClient(client Client) CatalogOption {
	return func(c *Catalog) {
		c.client = client
	}
}

// WithCanonicalBase overrides the base URL canonical deep links are
// derived from.
func WithCanonicalBase(base string) CatalogOption {
	return func(c *Catalog) {
		c.canonicalBase = base
	}
}

// NewCatalog constructs a Catalog. Without options it talks to the
// production API via a default Client.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		canonicalBase: DefaultCanonicalBase,
		markers:       cache.New(cache.NoExpiration, 0),
		details:       cache.New(cache.NoExpiration, 0),
		randIntN:      rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = NewClient()
	}
	return c
}

// Client returns the underlying Client, for endpoints the Catalog does
// not model.
func (c *Catalog) Client() Client {
	return c.client
}

// ClearCache discards all memoized markers, details, and images.
func (c *Catalog) ClearCache() {
	c.markers.Flush()
	c.details.Flush()
}

// Markers returns the marker index entries for one category. The index
// is fetched and decoded once; each call filters it into a fresh slice.
func (c *Catalog) Markers(ctx context.Context, cat Category) ([]Marker, error) {
	all, err := c.markerList(ctx)
	if err != nil {
		return nil, err
	}
	var markers []Marker
	for _, m := range all {
		if m.Properties.Type == string(cat) {
			markers = append(markers, m)
		}
	}
	return markers, nil
}

// markerList fetches and memoizes the full marker index.
func (c *Catalog) markerList(ctx context.Context) ([]Marker, error) {
	if cached, ok := c.markers.Get(markersCacheKey); ok {
		return cached.([]Marker), nil
	}

	data, err := c.client.Get(ctx, markersPath)
	if err != nil {
		return nil, err
	}
	var doc markersDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedResponseError{Field: "features", Err: err}
	}

	c.markers.Set(markersCacheKey, doc.Features, cache.NoExpiration)
	return doc.Features, nil
}

// Feature fetches one feature's detail record and parses it. Records are
// memoized per (category, ID), so repeated calls return the same
// *Feature.
func (c *Catalog) Feature(ctx context.Context, id int, cat Category) (*Feature, error) {
	path := fmt.Sprintf(detailPathFmt, cat, id)
	if cached, ok := c.details.Get(path); ok {
		return cached.(*Feature), nil
	}

	data, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	f, err := newFeature(data, c.canonicalBase)
	if err != nil {
		return nil, err
	}

	c.details.Set(path, f, cache.NoExpiration)
	return f, nil
}

// FeatureByID locates a feature in the marker index without knowing its
// category, then fetches its detail record. It returns ErrNotFound when
// no marker carries the ID.
func (c *Catalog) FeatureByID(ctx context.Context, id int) (*Feature, error) {
	all, err := c.markerList(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if m.Properties.ID != id {
			continue
		}
		cat, err := ParseCategory(m.Properties.Type)
		if err != nil {
			return nil, err
		}
		return c.Feature(ctx, id, cat)
	}
	return nil, eris.Wrapf(ErrNotFound, "no marker with ID %d", id)
}

// RandomFeature fetches the detail record of one uniformly chosen marker
// in the category.
func (c *Catalog) RandomFeature(ctx context.Context, cat Category) (*Feature, error) {
	markers, err := c.Markers(ctx, cat)
	if err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return nil, eris.Errorf("xjdp: no %s markers", cat)
	}
	m := markers[c.randIntN(len(markers))]
	return c.Feature(ctx, m.Properties.ID, cat)
}
