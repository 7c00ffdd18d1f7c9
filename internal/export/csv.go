package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/fionn/xjdp"
)

// writeCSV writes features as UTF-8 CSV with a header row.
func writeCSV(features []*xjdp.Feature, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header(true)); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, feat := range features {
		if err := w.Write(record(feat, true)); err != nil {
			return eris.Wrapf(err, "export: write feature %d", feat.ID)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}
