package export

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/fionn/xjdp"
)

// shapefileFields describes the DBF schema, in header(false) order.
func shapefileFields() []shp.Field {
	return []shp.Field{
		shp.NumberField("id", 10),
		shp.StringField("title", 254),
		shp.FloatField("lat", 16, 6),
		shp.FloatField("long", 16, 6),
		shp.StringField("prefecture", 64),
		shp.StringField("county", 64),
		shp.StringField("type", 16),
		shp.StringField("url", 254),
		shp.StringField("image_url", 254),
	}
}

// writeShapefile writes features as a point shapefile. The writer derives
// the .shx and .dbf names by replacing the .shp suffix, so the suffix is
// appended when missing.
func writeShapefile(features []*xjdp.Feature, path string) error {
	if !strings.HasSuffix(path, ".shp") {
		path += ".shp"
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer w.Close() //nolint:errcheck

	w.SetFields(shapefileFields())

	for row, f := range features {
		w.Write(&shp.Point{X: f.Location.Long, Y: f.Location.Lat})

		attrs := []interface{}{
			f.ID,
			f.Title,
			f.Location.Lat,
			f.Location.Long,
			f.Prefecture,
			f.County,
			string(f.Category),
			f.CanonicalURL,
			f.ImageURL,
		}
		for i, val := range attrs {
			if err := w.WriteAttribute(row, i, val); err != nil {
				return eris.Wrapf(err, "export: write attribute %d of feature %d", i, f.ID)
			}
		}
	}

	return nil
}
