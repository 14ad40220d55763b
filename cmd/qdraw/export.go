package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/config"
	"github.com/nxtei/quality-draw/internal/export"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
	"github.com/nxtei/quality-draw/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the draw history",
		Long: `Export the draw history as an Excel workbook, a printable HTML page,
or to a Google Sheets spreadsheet.

Files are written to --output, or to export.dir (default: the working directory)
under a name like 抽签记录_20240301_093000.xlsx.`,
	}

	cmd.AddCommand(exportFileCmd("xlsx", "Export to an Excel workbook", writeXLSXFile))
	cmd.AddCommand(exportFileCmd("html", "Export to a printable HTML page", writeHTMLFile))
	cmd.AddCommand(exportSheetsCmd())
	cmd.AddCommand(sheetsAuthCmd())

	return cmd
}

type fileWriter func(records []model.DrawRecord, path string, now time.Time) error

func writeXLSXFile(records []model.DrawRecord, path string, _ time.Time) error {
	return export.WriteXLSX(records, path, export.XLSXOptions{})
}

func writeHTMLFile(records []model.DrawRecord, path string, now time.Time) (err error) {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return export.WriteHTML(f, records, now)
}

func exportFileCmd(ext, short string, write fileWriter) *cobra.Command {
	var (
		output string
		flags  filterFlags
	)

	cmd := &cobra.Command{
		Use:   ext,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			records, err := loadRecords(ctx, filter)
			if err != nil {
				return err
			}

			now := time.Now()
			path := config.ExportPath(output, viper.GetString("export.dir"), export.DefaultFilename(ext, now))
			if err := write(records, path, now); err != nil {
				return err
			}

			slog.Info("Exported draw records", "format", ext, "path", path, "records", len(records))
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s 已导出 %d 条记录到 %s", cli.ExportIcon, len(records), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	flags.register(cmd)

	return cmd
}

func loadRecords(ctx context.Context, filter service.RecordFilter) ([]model.DrawRecord, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	if len(records) == 0 {
		return nil, common.NewUserError(export.NoRecordsMessage, common.ErrNoRecords)
	}
	return records, nil
}

func exportSheetsCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Publish the history to Google Sheets",
		Long: `Replace the contents of the configured sheet with the draw history.

Authenticate first with 'qdraw export sheets-auth', or configure a service account
with sheets.service_account_path.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			cfg, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets 未配置, 请先运行 'qdraw export sheets-auth'", err)
			}

			ctx := cmd.Context()
			records, err := loadRecords(ctx, filter)
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}
			if err := publish(ctx, writer, records); err != nil {
				common.LogError(err, "Sheets export failed", common.Fields{
					"records":        len(records),
					"spreadsheet_id": cfg.SpreadsheetID,
				})
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s 已写入 %d 条记录到 Google Sheets", cli.ExportIcon, len(records))))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func publish(ctx context.Context, w service.RecordWriter, records []model.DrawRecord) error {
	if err := w.WriteRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

func sheetsAuthCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "sheets-auth",
		Short: "Authorize Google Sheets access",
		Long: `Run the browser OAuth2 flow and save the token for 'qdraw export sheets'.

Needs sheets.client_id and sheets.client_secret in the config file, or
GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID := viper.GetString("sheets.client_id")
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			clientSecret := viper.GetString("sheets.client_secret")
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return common.NewUserError("缺少 OAuth2 客户端 ID 或密钥", common.ErrMissingConfig)
			}

			out := cmd.OutOrStdout()
			tokenFile := config.TokenFile()
			token, err := sheets.GetOrCreateToken(cmd.Context(), sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
				ListenAddr:   listen,
				OpenURL: func(url string) {
					fmt.Fprintln(out, cli.FormatInfo("请在浏览器中打开以下链接完成授权:"))
					fmt.Fprintln(out, url)
				},
			})
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}
			if err := sheets.SaveToken(tokenFile, token); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("授权成功, 令牌已保存到 "+tokenFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "localhost:8080", "address for the OAuth2 callback server")

	return cmd
}
