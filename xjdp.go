// Package xjdp is a typed client for the Xinjiang Data Project's public
// map data: marker listings, per-feature detail records, satellite imagery
// and aggregate statistics. It is read-only; the remote catalog is small
// and finite, so fetched documents are memoized for the lifetime of a
// Catalog rather than evicted.
package xjdp

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Version is the client library version.
const Version = "0.1.0"

// Default endpoints of the upstream service. All data paths are relative
// to the base URL; canonical deep links are built on the canonical base.
const (
	DefaultBaseURL       = "https://xjdp.aspi.org.au/data/"
	DefaultCanonicalBase = "https://xjdp.aspi.org.au/explorer/"
)

// Coordinates is a latitude/longitude pair as reported upstream. Values
// are passed through verbatim, without range validation.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Category partitions the catalog by feature type. The constants carry the
// wire values used in endpoint paths and marker properties.
type Category string

const (
	CategoryCamp     Category = "camp"
	CategoryCultural Category = "cultural"

	// CategoryMosque is a second name for the cultural wire value: the
	// upstream service files mosques under its cultural partition, so both
	// labels resolve to the same endpoints and cache entries.
	CategoryMosque Category = CategoryCultural
)

// ParseCategory maps a user-supplied label to a Category. "mosque" is
// accepted and resolves to the cultural wire value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "camp":
		return CategoryCamp, nil
	case "cultural":
		return CategoryCultural, nil
	case "mosque":
		return CategoryMosque, nil
	default:
		return "", eris.Errorf("xjdp: unknown category %q (want camp, cultural or mosque)", s)
	}
}
