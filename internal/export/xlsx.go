package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/fionn/xjdp"
)

// writeXLSX writes features as a single-sheet workbook with a header row
// and typed cells.
func writeXLSX(features []*xjdp.Feature, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("features")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	head := sheet.AddRow()
	for _, col := range header(true) {
		head.AddCell().SetString(col)
	}

	for _, f := range features {
		row := sheet.AddRow()
		row.AddCell().SetInt(f.ID)
		row.AddCell().SetString(f.Title)
		row.AddCell().SetFloat(f.Location.Lat)
		row.AddCell().SetFloat(f.Location.Long)
		row.AddCell().SetString(f.Prefecture)
		row.AddCell().SetString(f.County)
		row.AddCell().SetString(string(f.Category))
		row.AddCell().SetString(f.CanonicalURL)
		row.AddCell().SetString(f.ImageURL)
		row.AddCell().SetString(f.Text)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
