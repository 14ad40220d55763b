package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/engine"
	"github.com/nxtei/quality-draw/internal/tui"
	"github.com/nxtei/quality-draw/internal/tui/themes"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive draw screen",
		Long: `Open the full-screen draw screen.

Pick a department with j/k, then press p (承压类), m (机电类) or a to draw
everything it needs. n starts a new round, q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			themeName := viper.GetString("ui.theme")
			if !slices.Contains(themes.Names(), themeName) {
				return fmt.Errorf("%w: unknown theme %q (available: %v)", common.ErrInvalidConfig, themeName, themes.Names())
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Log lines would tear the alternate screen.
			cfg := engine.DefaultConfig()
			cfg.AvoidRepeat = viper.GetBool("draw.avoid_repeat")
			cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			eng := engine.NewWithConfig(store, cfg)

			return tui.Run(ctx,
				tui.WithDrawer(eng),
				tui.WithDepartments(store),
				tui.WithTheme(themes.GetTheme(themeName)),
				tui.WithAnimation(viper.GetDuration("ui.animation"), 0),
			)
		},
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Duration("animation", 0, "length of the rolling animation, 0 to disable")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("ui.animation", cmd.Flags().Lookup("animation"))

	return cmd
}
