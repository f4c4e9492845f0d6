package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/membot/internal/config"
	"github.com/sandevgo/membot/internal/service/importer"
	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/internal/storage/sqlite"
)

var importCmd = &cobra.Command{
	Use:   "import <path or url>",
	Short: "Import documents into long-term memory",
	Long: `Splits markdown and text documents (or a fetched web page) into
passages and stores each one as a searchable memory. Passages already
known to the store are skipped.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		memCfg := config.NewMemoryConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		memories := memory.NewService(sqlite.NewMemoriesRepo(db), memCfg.GetDuplicateThreshold())
		imp := importer.New(memories)

		target := args[0]
		var stats importer.Stats
		switch {
		case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
			stats, err = imp.ImportURL(ctx, target)
		default:
			info, statErr := os.Stat(target)
			if statErr != nil {
				return statErr
			}
			if info.IsDir() {
				stats, err = imp.ImportDir(ctx, target)
			} else {
				stats, err = imp.ImportFile(ctx, target)
			}
		}
		if err != nil {
			return err
		}

		cmd.Printf("Imported %d source(s), %d passage(s) scanned: %d new, %d already known, %d too small\n",
			stats.Sources, stats.Scanned, stats.Inserted, stats.Duplicates, stats.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
