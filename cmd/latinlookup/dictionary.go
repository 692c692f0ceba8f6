package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/latinlookup/internal/collector"
	"github.com/at-ishikawa/latinlookup/internal/database"
	"github.com/at-ishikawa/latinlookup/internal/datasync"
	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/schemas"
)

func newDictionaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Manage stored dictionary responses",
	}
	cmd.AddCommand(
		newDictionaryMigrateCommand(),
		newDictionaryImportCommand(),
		newDictionaryExportCommand(),
	)
	return cmd
}

func newDictionaryMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", len(applied))
			return nil
		},
	}
}

func newDictionaryImportCommand() *cobra.Command {
	var (
		dryRun         bool
		updateExisting bool
		collectedFile  string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cached responses into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			client := dictionary.NewClient(cfg.Dictionaries.LatinWords.ClientConfig())
			defer func() {
				_ = client.Close()
			}()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(dictionary.NewDBResponseRepository(db), client.SourceURL, out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}

			var result *datasync.ImportResult
			if collectedFile != "" {
				responses, err := collector.LoadResponses(collectedFile)
				if err != nil {
					return fmt.Errorf("collector.LoadResponses() > %w", err)
				}
				result, err = importer.ImportCollected(ctx, responses, opts)
				if err != nil {
					return fmt.Errorf("importer.ImportCollected() > %w", err)
				}
			} else {
				cache := dictionary.NewFileCache(cfg.Dictionaries.LatinWords.CacheDirectory)
				result, err = importer.ImportFileCache(ctx, cache, opts)
				if err != nil {
					return fmt.Errorf("importer.ImportFileCache() > %w", err)
				}
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Responses: %d new, %d skipped, %d updated, %d invalid\n",
				result.New, result.Skipped, result.Updated, result.Invalid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	cmd.Flags().StringVar(&collectedFile, "collected", "", "Import a JSON file written by the collect command instead of the file cache")
	return cmd
}

func newDictionaryExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.yml>",
		Short: "Export stored responses as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			records, err := datasync.NewExporter(dictionary.NewDBResponseRepository(db)).Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", args[0], err)
			}
			defer func() {
				_ = file.Close()
			}()
			if err := datasync.WriteYAML(file, records); err != nil {
				return fmt.Errorf("datasync.WriteYAML() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d response(s) to %s\n", len(records), args[0])
			return nil
		},
	}
}
