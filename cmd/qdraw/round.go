package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

func roundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Manage the current draw round",
		Long: `A round is one pass of inspections. Within a round a department is drawn at most
once per specialty, and two departments never inspect each other.`,
	}

	cmd.AddCommand(newRoundCmd())
	cmd.AddCommand(roundStatusCmd())
	cmd.AddCommand(roundDrawCmd())

	return cmd
}

func newRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new round",
		Long:  `Forget the picks of the current round. Draw history is kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := newEngine(store).StartNewRound(ctx); err != nil {
				return fmt.Errorf("failed to start new round: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(cli.RoundIcon+" 已开始新一轮抽签"))
			return nil
		},
	}
}

func roundStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the picks of the current round",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := newEngine(store).RoundStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get round status: %w", err)
			}
			departments, err := store.GetDepartments(ctx)
			if err != nil {
				return fmt.Errorf("failed to get departments: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("本轮已抽 %d 次", summary.Total())))
			fmt.Fprintln(out, cli.RenderRound(summary, departmentNames(departments)))
			return nil
		},
	}
}

func roundDrawCmd() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw for every department in catalog order",
		Long: `Run every draw each department needs, in catalog order.

Interrupting keeps the draws already made; run 'qdraw round status' to see them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			handler := cli.NewInterruptHandler(out, "已完成的抽签已保存。")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := newEngine(store)
			if fresh {
				if err := eng.StartNewRound(ctx); err != nil {
					return fmt.Errorf("failed to start new round: %w", err)
				}
			}

			departments, err := store.GetDepartments(ctx)
			if err != nil {
				return fmt.Errorf("failed to get departments: %w", err)
			}
			if len(departments) == 0 {
				return common.NewUserError("没有部门可以抽签", common.ErrNotFound)
			}

			outcomes, err := drawRound(ctx, out, eng, departments)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			failed := 0
			for _, o := range outcomes {
				fmt.Fprintln(out, cli.FormatResult(o.name, o.result))
				if !o.result.Success {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d 次抽签未成功", failed)))
				return errDrawIncomplete
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "new", false, "start a new round first")

	return cmd
}

// drawer is the part of the engine used by batch draws.
type drawer interface {
	DrawAll(ctx context.Context, targetID string) []model.DrawResult
}

type roundOutcome struct {
	name   string
	result model.DrawResult
}

// drawRound draws for each department in order, stopping early when ctx is canceled.
func drawRound(ctx context.Context, w io.Writer, d drawer, departments []model.Department) ([]roundOutcome, error) {
	progress := cli.NewProgress(w, len(departments), "抽签中")
	outcomes := make([]roundOutcome, 0, len(departments)*2)

	for _, dept := range departments {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("round draw interrupted after %d draws: %w", len(outcomes), err)
		}
		for _, r := range d.DrawAll(ctx, dept.ID) {
			outcomes = append(outcomes, roundOutcome{name: dept.Name, result: r})
		}
		progress.Step(dept.Name)
	}
	progress.Finish()

	return outcomes, nil
}
