package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fionn/xjdp"
	"github.com/fionn/xjdp/internal/export"
)

var (
	exportFormat      string
	exportOut         string
	exportCategory    string
	exportConcurrency int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a category's features to GeoJSON, shapefile, XLSX or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportConcurrency > 0 {
			cfg.Export.Concurrency = exportConcurrency
		}
		if err := cfg.Validate("export"); err != nil {
			return err
		}
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		cat, err := xjdp.ParseCategory(exportCategory)
		if err != nil {
			return err
		}

		catalog := newCatalog()
		ctx := cmd.Context()

		markers, err := catalog.Markers(ctx, cat)
		if err != nil {
			return err
		}
		zap.L().Info("resolving features",
			zap.String("category", string(cat)),
			zap.Int("count", len(markers)),
			zap.Int("concurrency", cfg.Export.Concurrency),
		)

		// Fetch details in parallel, keeping marker index order.
		features := make([]*xjdp.Feature, len(markers))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Export.Concurrency)
		for i, m := range markers {
			g.Go(func() error {
				f, err := catalog.Feature(gctx, m.Properties.ID, cat)
				if err != nil {
					return err
				}
				features[i] = f
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "resolve features")
		}

		if err := export.Write(features, format, exportOut); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("format", string(format)),
			zap.String("path", exportOut),
			zap.Int("features", len(features)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "geojson", "output format (geojson, shapefile, xlsx or csv)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (required)")
	exportCmd.Flags().StringVar(&exportCategory, "category", "camp", "feature category (camp, cultural or mosque)")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 0, "parallel detail fetches (default from config)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
