package main

import (
	"fmt"

	"github.com/jo-hoe/snapfolder/internal/link"
	"github.com/spf13/cobra"
)

var linkOrigin string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print a new capture link",
	Long: `Print a new capture link. The origin defaults to publicOrigin from the
config file, or to a bare path when neither is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		origin := linkOrigin
		if origin == "" {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			origin = config.PublicOrigin
		}

		newLink, err := link.Generate(origin)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), newLink)
		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&linkOrigin, "origin", "", "origin to prefix the link with, e.g. https://photos.example")
	rootCmd.AddCommand(linkCmd)
}
