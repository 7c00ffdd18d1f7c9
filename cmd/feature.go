package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fionn/xjdp"
)

var (
	featureCategory string
	featureRaw      bool
)

var featureCmd = &cobra.Command{
	Use:   "feature <id>",
	Short: "Fetch one feature by ID",
	Long:  "Fetches one feature's detail record. Without --category the ID is resolved through the marker index.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Wrapf(err, "parse feature ID %q", args[0])
		}

		catalog := newCatalog()
		ctx := cmd.Context()

		var f *xjdp.Feature
		if featureCategory == "" {
			f, err = catalog.FeatureByID(ctx, id)
		} else {
			var cat xjdp.Category
			cat, err = xjdp.ParseCategory(featureCategory)
			if err != nil {
				return err
			}
			f, err = catalog.Feature(ctx, id, cat)
		}
		if err != nil {
			return err
		}

		if featureRaw {
			var buf bytes.Buffer
			if err := json.Indent(&buf, f.Data, "", "  "); err != nil {
				return eris.Wrap(err, "indent raw record")
			}
			fmt.Println(buf.String())
			return nil
		}
		return printJSON(f)
	},
}

func init() {
	featureCmd.Flags().StringVar(&featureCategory, "category", "", "feature category (resolved from the marker index when empty)")
	featureCmd.Flags().BoolVar(&featureRaw, "raw", false, "print the unparsed upstream record")
	rootCmd.AddCommand(featureCmd)
}
