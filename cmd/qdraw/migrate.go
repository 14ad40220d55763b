package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Other commands migrate automatically; use --status to inspect a database
without changing it.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status {
		fmt.Fprintln(out, cli.FormatTitle("数据库迁移状态"))
		fmt.Fprintf(out, "数据库: %s\n", store.Path())
		fmt.Fprintf(out, "当前版本: %d\n", current)
		fmt.Fprintf(out, "最新版本: %d\n", storage.ExpectedSchemaVersion)
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning("需要迁移, 请运行 'qdraw migrate'"))
		}
		return nil
	}

	slog.Info("Running database migrations", "database", store.Path(), "from", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("数据库已是最新版本 (v%d)", storage.ExpectedSchemaVersion)))
	return nil
}
