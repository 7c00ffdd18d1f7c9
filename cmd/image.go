package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fionn/xjdp"
)

var (
	imageCategory string
	imageOut      string
)

var imageCmd = &cobra.Command{
	Use:   "image <id>",
	Short: "Download a feature's satellite image",
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
		if imageCategory == "" {
			f, err = catalog.FeatureByID(ctx, id)
		} else {
			var cat xjdp.Category
			cat, err = xjdp.ParseCategory(imageCategory)
			if err != nil {
				return err
			}
			f, err = catalog.Feature(ctx, id, cat)
		}
		if err != nil {
			return err
		}

		img, err := catalog.Image(ctx, f)
		if err != nil {
			return err
		}
		defer img.Close() //nolint:errcheck

		out := imageOut
		if out == "" {
			out = fmt.Sprintf("%d.jpg", f.ID)
		}
		dst, err := os.Create(out)
		if err != nil {
			return eris.Wrapf(err, "create %s", out)
		}
		defer dst.Close() //nolint:errcheck

		n, err := io.Copy(dst, img)
		if err != nil {
			return eris.Wrapf(err, "write %s", out)
		}

		zap.L().Info("image saved",
			zap.Int("feature", f.ID),
			zap.String("path", out),
			zap.Int64("bytes", n),
		)
		return nil
	},
}

func init() {
	imageCmd.Flags().StringVar(&imageCategory, "category", "", "feature category (resolved from the marker index when empty)")
	imageCmd.Flags().StringVar(&imageOut, "out", "", "output path (default <id>.jpg)")
	rootCmd.AddCommand(imageCmd)
}
