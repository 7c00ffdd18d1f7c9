package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fionn/xjdp"
	"github.com/fionn/xjdp/internal/config"
)

// setExportGlobals points the command globals at a stub upstream and
// restores them afterwards.
func setExportGlobals(t *testing.T, format, out, category string) {
	t.Helper()

	srv := testUpstream(t)
	origCfg := cfg
	cfg = &config.Config{
		API: config.APIConfig{
			BaseURL:       srv.URL + "/",
			CanonicalBase: xjdp.DefaultCanonicalBase,
			TimeoutSecs:   5,
		},
		Export: config.ExportConfig{Concurrency: 4},
		Server: config.ServerConfig{Port: 8080},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}

	origFormat, origOut, origCategory, origConc := exportFormat, exportOut, exportCategory, exportConcurrency
	exportFormat, exportOut, exportCategory, exportConcurrency = format, out, category, 0

	t.Cleanup(func() {
		cfg = origCfg
		exportFormat, exportOut, exportCategory, exportConcurrency = origFormat, origOut, origCategory, origConc
	})
}

func TestExportCmd_WritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "camps.csv")
	setExportGlobals(t, "csv", out, "camp")

	exportCmd.SetContext(context.Background())
	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Marker index order is preserved through the parallel fetch.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Facility One", rows[1][1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Facility Two", rows[2][1])
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	setExportGlobals(t, "kml", filepath.Join(t.TempDir(), "out.kml"), "camp")

	exportCmd.SetContext(context.Background())
	err := exportCmd.RunE(exportCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExportCmd_UnknownCategory(t *testing.T) {
	setExportGlobals(t, "csv", filepath.Join(t.TempDir(), "out.csv"), "prison")

	exportCmd.SetContext(context.Background())
	err := exportCmd.RunE(exportCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}
