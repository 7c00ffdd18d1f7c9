package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fionn/xjdp"
)

var featuresCategory string

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Stream all features in a category as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		cat, err := xjdp.ParseCategory(featuresCategory)
		if err != nil {
			return err
		}

		// Each feature is printed as soon as its detail record arrives.
		enc := json.NewEncoder(os.Stdout)
		it := newCatalog().Features(cmd.Context(), cat)
		var n int
		for it.Next() {
			if err := enc.Encode(it.Feature()); err != nil {
				return err
			}
			n++
		}
		if err := it.Err(); err != nil {
			return err
		}

		zap.L().Debug("features streamed",
			zap.String("category", string(cat)),
			zap.Int("count", n),
		)
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringVar(&featuresCategory, "category", "camp", "feature category (camp, cultural or mosque)")
	rootCmd.AddCommand(featuresCmd)
}
