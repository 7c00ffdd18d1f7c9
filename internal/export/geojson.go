package export

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/fionn/xjdp"
)

// writeGeoJSON writes features as a GeoJSON FeatureCollection of points.
// Coordinates stay in the geometry; the remaining fields become
// properties, with empty optionals omitted.
func writeGeoJSON(features []*xjdp.Feature, path string) error {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(features))}
	for _, f := range features {
		props := map[string]interface{}{
			"id":         f.ID,
			"title":      f.Title,
			"prefecture": f.Prefecture,
			"county":     f.County,
			"type":       string(f.Category),
			"url":        f.CanonicalURL,
		}
		if f.ImageURL != "" {
			props["image_url"] = f.ImageURL
		}
		if f.Text != "" {
			props["text"] = f.Text
		}

		// GeoJSON positions are [longitude, latitude].
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, []float64{f.Location.Long, f.Location.Lat}),
			Properties: props,
		})
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: encode GeoJSON")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
