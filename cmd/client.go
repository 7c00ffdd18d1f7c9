package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/fionn/xjdp"
)

// newCatalog builds the API client and catalog from the loaded config.
func newCatalog() *xjdp.Catalog {
	client := xjdp.NewClient(
		xjdp.WithBaseURL(cfg.API.BaseURL),
		xjdp.WithTimeout(time.Duration(cfg.API.TimeoutSecs)*time.Second),
	)
	return xjdp.NewCatalog(
		xjdp.WithCatalogClient(client),
		xjdp.WithCanonicalBase(cfg.API.CanonicalBase),
	)
}

// printJSON writes v to stdout, indented.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
