// Package export writes catalog features to common GIS and tabular
// formats: GeoJSON, ESRI shapefile, XLSX and CSV.
package export

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/fionn/xjdp"
)

// Format identifies an output format.
type Format string

const (
	FormatGeoJSON   Format = "geojson"
	FormatShapefile Format = "shapefile"
	FormatXLSX      Format = "xlsx"
	FormatCSV       Format = "csv"
)

// ParseFormat maps a user-supplied label to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geojson":
		return FormatGeoJSON, nil
	case "shapefile", "shp":
		return FormatShapefile, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want geojson, shapefile, xlsx or csv)", s)
	}
}

// Write writes features to path in the given format. The feature order is
// preserved.
func Write(features []*xjdp.Feature, format Format, path string) error {
	switch format {
	case FormatGeoJSON:
		return writeGeoJSON(features, path)
	case FormatShapefile:
		return writeShapefile(features, path)
	case FormatXLSX:
		return writeXLSX(features, path)
	case FormatCSV:
		return writeCSV(features, path)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// header returns the tabular column names. DBF attribute values cap at
// 254 bytes, so the free-text column is excluded from shapefiles.
func header(withText bool) []string {
	cols := []string{"id", "title", "lat", "long", "prefecture", "county", "type", "url", "image_url"}
	if withText {
		cols = append(cols, "text")
	}
	return cols
}

// record renders one feature as strings in header order.
func record(f *xjdp.Feature, withText bool) []string {
	row := []string{
		strconv.Itoa(f.ID),
		f.Title,
		strconv.FormatFloat(f.Location.Lat, 'f', -1, 64),
		strconv.FormatFloat(f.Location.Long, 'f', -1, 64),
		f.Prefecture,
		f.County,
		string(f.Category),
		f.CanonicalURL,
		f.ImageURL,
	}
	if withText {
		row = append(row, f.Text)
	}
	return row
}
