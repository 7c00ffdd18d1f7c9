package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fionn/xjdp"
)

var markersCategory string

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "List a category's marker index entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		cat, err := xjdp.ParseCategory(markersCategory)
		if err != nil {
			return err
		}

		markers, err := newCatalog().Markers(cmd.Context(), cat)
		if err != nil {
			return err
		}

		zap.L().Debug("markers fetched",
			zap.String("category", string(cat)),
			zap.Int("count", len(markers)),
		)
		return printJSON(markers)
	},
}

func init() {
	markersCmd.Flags().StringVar(&markersCategory, "category", "camp", "feature category (camp, cultural or mosque)")
	rootCmd.AddCommand(markersCmd)
}
