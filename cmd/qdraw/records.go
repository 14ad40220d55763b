package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

// filterFlags are the history filters shared by records and export commands.
type filterFlags struct {
	since      string
	department string
	specialty  string
	limit      int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.since, "since", "", "only records on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.department, "department", "d", "", "only records for this inspected department id")
	cmd.Flags().StringVarP(&f.specialty, "specialty", "s", "", "only records for this specialty (pressure, mechanical)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "keep only the newest N records")
}

func (f *filterFlags) filter() (service.RecordFilter, error) {
	filter := service.RecordFilter{
		TargetDepartmentID: f.department,
		Limit:              f.limit,
	}
	if f.since != "" {
		since, err := time.ParseInLocation("2006-01-02", f.since, time.Local)
		if err != nil {
			return filter, fmt.Errorf("%w: --since must be YYYY-MM-DD", common.ErrInvalidConfig)
		}
		filter.Since = &since
	}
	if f.specialty != "" {
		s, ok := model.ParseSpecialtyType(f.specialty)
		if !ok {
			return filter, fmt.Errorf("%w: unknown specialty %q", common.ErrInvalidSpecialty, f.specialty)
		}
		filter.Specialty = s
	}
	return filter, nil
}

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"history"},
		Short:   "Show or clear the draw history",
	}

	cmd.AddCommand(listRecordsCmd())
	cmd.AddCommand(clearRecordsCmd())

	return cmd
}

func listRecordsCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List draw records, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetRecords(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get records: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("暂无抽签记录"))
				return nil
			}
			fmt.Fprintln(out, cli.RenderRecords(records))
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("共计 %d 条抽签记录", len(records))))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func clearRecordsCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole draw history",
		Long:  `Delete every draw record. The current round is not affected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, cli.FormatWarning("这将删除全部抽签记录。确认请加上 --yes"))
				return nil
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.ClearRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear records: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("已删除 %d 条抽签记录", n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	return cmd
}
