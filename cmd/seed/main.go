package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fims/internal/cache"
	"fims/internal/config"
	"fims/internal/credential"
	"fims/internal/db"
	"fims/internal/logging"
	"fims/internal/repository"
	"fims/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "fims-seed",
	Short: "fims-seed loads catalog items into the inventory database",
	Long: "fims-seed reads a JSON array of items from a URL or a file and upserts them by item_id.\n" +
		"Database settings come from the same environment variables and CONFIG_FILE as the server.",
	RunE: rootRunE,
}

var (
	source        string
	reset         bool
	adminUser     string
	adminPassword string
)

func rootRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.Database())
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, reset); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	ctx := cmd.Context()
	if adminUser != "" {
		if err := seedAdmin(ctx, cfg, repository.NewAccountRepository(gormDB)); err != nil {
			return err
		}
	}

	log.Info().Str("source", source).Msg("fetching items")
	data, err := fetchItems(ctx, source)
	if err != nil {
		return err
	}

	itemCache := cache.New(cfg.Cache())
	defer itemCache.Close()

	summary, err := seedItems(ctx, repository.NewItemRepository(gormDB), itemCache, data)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, accounts repository.AccountRepository) error {
	codec, err := credential.NewCodec(cfg.Credential())
	if err != nil {
		return err
	}
	// Signup needs no item or report access.
	svc := service.NewAccountService(accounts, nil, nil, codec, nil)
	if _, err := svc.Signup(ctx, "Admin", adminUser, adminPassword); err != nil {
		return fmt.Errorf("seed admin %s: %w", adminUser, err)
	}
	log.Info().Str("username", adminUser).Msg("admin account ready")
	return nil
}

func printSummary(s seedSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Item ID", "Name", "Quantity", "Price", "Result"})
	for _, r := range s.Rows {
		t.AppendRow(table.Row{r.ItemID, r.Name, r.Quantity, r.Price, r.Result})
	}
	t.AppendFooter(table.Row{"", "", "", "created / updated / skipped",
		fmt.Sprintf("%d / %d / %d", s.Created, s.Updated, s.Skipped)})
	t.Render()
}

func main() {
	rootCmd.Flags().StringVarP(&source, "source", "s", "items.json", "URL or file path of the items JSON array")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate all tables before seeding")
	rootCmd.Flags().StringVar(&adminUser, "admin-user", "", "also create or overwrite this administrator account")
	rootCmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for --admin-user")
	rootCmd.MarkFlagsRequiredTogether("admin-user", "admin-password")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
