package config

import (
	"github.com/spf13/viper"

	"github.com/nxtei/quality-draw/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration from viper, then GOOGLE_SHEETS_*
// environment variables, then defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		cfg.SpreadsheetName = v
	}
	if v := viper.GetString("sheets.sheet_title"); v != "" {
		cfg.SheetTitle = v
	}
	if v := viper.GetString("sheets.time_zone"); v != "" {
		cfg.TimeZone = v
	}
	if viper.IsSet("sheets.formatting") {
		cfg.EnableFormatting = viper.GetBool("sheets.formatting")
	}

	cfg.LoadFromEnv()
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	// Without a saved refresh token, reuse the one written by `export sheets-auth`.
	if cfg.ServiceAccountPath == "" && cfg.RefreshToken == "" {
		if token, err := sheets.LoadToken(TokenFile()); err == nil {
			cfg.RefreshToken = token.RefreshToken
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TokenFile is where the interactive OAuth2 flow stores its token.
func TokenFile() string {
	if v := viper.GetString("sheets.token_file"); v != "" {
		return ExpandPath(v)
	}
	return ExpandPath(DefaultTokenFile)
}
