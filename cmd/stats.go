package main

import (
	"github.com/spf13/cobra"

	"github.com/fionn/xjdp"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print global summary statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		stats, err := newCatalog().Client().Global(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(stats)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("xjdp " + xjdp.Version)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
