package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jo-hoe/snapfolder/internal/export"
	"github.com/jo-hoe/snapfolder/internal/folder"
	"github.com/jo-hoe/snapfolder/internal/kvstore"
	"github.com/spf13/cobra"
)

var exportOutput string

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Inspect and export stored folders",
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored folders with their photo counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openFolderStore()
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		folders := store.GetAll(ctx)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPHOTOS")
		for _, name := range store.Names(ctx) {
			fmt.Fprintf(w, "%s\t%d\n", name, len(folders[name]))
		}
		return w.Flush()
	},
}

var foldersExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a folder to a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openFolderStore()
		if err != nil {
			return err
		}
		defer closeStore()

		name := args[0]
		images, ok := store.Get(cmd.Context(), name)
		if !ok {
			return fmt.Errorf("folder %q not found", name)
		}

		output := exportOutput
		if output == "" {
			output = export.FileName(name)
		}
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		written, err := export.WriteZip(file, name, images)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to export folder %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d photos to %s\n", written, output)
		return nil
	},
}

func init() {
	foldersExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive path (default <name>.zip)")
	foldersCmd.AddCommand(foldersListCmd, foldersExportCmd)
	rootCmd.AddCommand(foldersCmd)
}

// openFolderStore opens the configured storage backend without starting any capture machinery.
func openFolderStore() (*folder.Store, func(), error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kv, err := kvstore.NewKeyValueStore(config.Storage.Type, config.Storage.ConnectionString)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return folder.NewStore(kv, config.Storage.Key), func() { _ = kv.Close() }, nil
}
