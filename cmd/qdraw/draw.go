package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/storage"
)

// errDrawIncomplete is returned after results were printed but at least one draw failed.
var errDrawIncomplete = common.NewUserError("部分抽签未成功", nil)

func drawCmd() *cobra.Command {
	var specialty string

	cmd := &cobra.Command{
		Use:   "draw <department-id>",
		Short: "Draw the inspecting departments for one department",
		Long: `Draw an inspecting department for the given department.

Without --specialty every specialty the department needs is drawn:
comprehensive departments get one pressure and one mechanical draw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := newEngine(store)
			targetID := args[0]

			var results []model.DrawResult
			if specialty == "" {
				results = eng.DrawAll(ctx, targetID)
			} else {
				s, ok := model.ParseSpecialtyType(specialty)
				if !ok {
					// Let the engine report the invalid specialty like any other failure.
					s = model.SpecialtyType(specialty)
				}
				results = []model.DrawResult{eng.Execute(ctx, targetID, s)}
			}

			return printResults(ctx, cmd.OutOrStdout(), store, targetID, results)
		},
	}

	cmd.Flags().StringVarP(&specialty, "specialty", "s", "", "draw only this specialty (pressure, mechanical)")

	return cmd
}

func targetName(ctx context.Context, store *storage.SQLiteStorage, id string) string {
	if d, err := store.GetDepartment(ctx, id); err == nil {
		return d.Name
	}
	return id
}

func printResults(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, targetID string, results []model.DrawResult) error {
	name := targetName(ctx, store, targetID)
	failed := false
	for _, r := range results {
		fmt.Fprintln(w, cli.FormatResult(name, r))
		if !r.Success {
			failed = true
		}
	}
	if failed {
		return errDrawIncomplete
	}
	return nil
}
