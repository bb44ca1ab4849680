package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"weddingsite/internal/di"
	"weddingsite/internal/storage"
	"weddingsite/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	serve := func(cmd *cobra.Command, args []string) error {
		app, err := di.InitApp(flags)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		return app.Run()
	}

	rootCmd := &cobra.Command{
		Use:           "weddingsite",
		Short:         "Wedding website server",
		RunE:          serve,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "debug mode, mirrors logs to the console")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serve,
	})

	var resource string
	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace a data document with its last compressed backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := storage.Keys
			if resource != "all" {
				if !slices.Contains(storage.Keys, resource) {
					return fmt.Errorf("unknown resource %q, expected one of %v or all", resource, storage.Keys)
				}
				keys = []string{resource}
			}
			store, err := di.InitStore(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			for _, key := range keys {
				if err := store.RestoreBackup(key); err != nil {
					return fmt.Errorf("restore %s: %w", key, err)
				}
				fmt.Println("Restored", key)
			}
			return nil
		},
	}
	restoreCmd.Flags().StringVarP(&resource, "resource", "r", "all", "resource to restore")
	rootCmd.AddCommand(restoreCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
