package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxtei/quality-draw/internal/cli"
	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/config"
	"github.com/nxtei/quality-draw/internal/model"
)

func departmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"dept"},
		Short:   "Manage the department catalog",
		Long:    `List, add, remove and import the departments taking part in the draw.`,
	}

	cmd.AddCommand(listDepartmentsCmd())
	cmd.AddCommand(addDepartmentCmd())
	cmd.AddCommand(removeDepartmentCmd())
	cmd.AddCommand(importDepartmentsCmd())
	cmd.AddCommand(dumpDepartmentsCmd())

	return cmd
}

func listDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all departments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			departments, err := store.GetDepartments(ctx)
			if err != nil {
				return fmt.Errorf("failed to get departments: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(departments) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("没有部门。使用 'qdraw departments add' 添加。"))
				return nil
			}
			fmt.Fprintln(out, cli.RenderDepartments(departments))
			return nil
		},
	}
}

func addDepartmentCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add or rename a department",
		Long: `Add a department to the catalog. An existing id is updated in place.

Types: comprehensive (综合类), pressure (承压类), mechanical (机电类).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := model.ParseDepartmentType(typeName)
			if !ok {
				return fmt.Errorf("%w: unknown department type %q", common.ErrInvalidConfig, typeName)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dept := model.NewDepartment(args[0], args[1], t)
			if err := store.SaveDepartment(ctx, &dept); err != nil {
				return fmt.Errorf("failed to save department: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("已保存部门 %s (%s, %s)", dept.Name, dept.ID, t.Label())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", string(model.DepartmentComprehensive), "department type")

	return cmd
}

func removeDepartmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a department from the catalog",
		Long:    `Remove a department. Draw history that mentions it is kept.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteDepartment(ctx, args[0]); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("部门 %s 不存在", args[0]), err)
				}
				return fmt.Errorf("failed to remove department: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("已删除部门 "+args[0]))
			return nil
		},
	}
}

func importDepartmentsCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <catalog.yaml | legacy-dir>",
		Short: "Import departments from a catalog file or legacy data",
		Long: `Import departments from a YAML catalog file, or import departments.json and
records.json from the data directory of the old desktop build.

With --replace, departments missing from the YAML catalog are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			path := config.ExpandPath(args[0])

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if info.IsDir() {
				result, err := store.ImportLegacyDir(ctx, path)
				if err != nil {
					return fmt.Errorf("legacy import failed: %w", err)
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("导入 %d 个部门, %d 条抽签记录", result.Departments, result.Records)))
				if result.Duplicates > 0 || result.SkippedRecords > 0 {
					fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("跳过 %d 条重复记录, %d 条无效记录", result.Duplicates, result.SkippedRecords)))
				}
				return nil
			}

			departments, err := config.LoadCatalog(path)
			if err != nil {
				return err
			}

			keep := make(map[string]bool, len(departments))
			for i := range departments {
				if err := store.SaveDepartment(ctx, &departments[i]); err != nil {
					return fmt.Errorf("failed to save department %s: %w", departments[i].ID, err)
				}
				keep[departments[i].ID] = true
			}

			removed := 0
			if replace {
				existing, err := store.GetDepartments(ctx)
				if err != nil {
					return fmt.Errorf("failed to get departments: %w", err)
				}
				for _, d := range existing {
					if keep[d.ID] {
						continue
					}
					if err := store.DeleteDepartment(ctx, d.ID); err != nil {
						return fmt.Errorf("failed to remove department %s: %w", d.ID, err)
					}
					removed++
				}
			}

			common.LogInfo("Imported department catalog", common.Fields{
				"path":     path,
				"imported": len(departments),
				"removed":  removed,
			})
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("导入 %d 个部门", len(departments))))
			if removed > 0 {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("删除 %d 个不在目录中的部门", removed)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "remove departments that are not in the catalog file")

	return cmd
}

func dumpDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the catalog as YAML",
		Long:  `Print the current catalog in the format accepted by 'qdraw departments import'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			departments, err := store.GetDepartments(ctx)
			if err != nil {
				return fmt.Errorf("failed to get departments: %w", err)
			}
			b, err := config.MarshalCatalog(departments)
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
