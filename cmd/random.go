package main

import (
	"github.com/spf13/cobra"

	"github.com/fionn/xjdp"
)

var randomCategory string

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch one uniformly chosen feature",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		cat, err := xjdp.ParseCategory(randomCategory)
		if err != nil {
			return err
		}

		f, err := newCatalog().RandomFeature(cmd.Context(), cat)
		if err != nil {
			return err
		}
		return printJSON(f)
	},
}

func init() {
	randomCmd.Flags().StringVar(&randomCategory, "category", "camp", "feature category (camp, cultural or mosque)")
	rootCmd.AddCommand(randomCmd)
}
