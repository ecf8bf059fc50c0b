package main

import (
	"fmt"
	"os"

	"gridmap/pkg/grid"
	"gridmap/pkg/headers"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func gridCmd(opts *rootOptions) *cobra.Command {
	var (
		collapse    []string
		hideColumns []int
		hideRows    []int
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Build a grid from the configuration and print its index summary",
		Long: `Build a grid with grid.rows, grid.columns and headers.file from the
configuration, apply the requested changes and print the index summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gridOpts := grid.Options{Rows: opts.cfg.Grid.Rows, Columns: opts.cfg.Grid.Columns}
			if file := opts.cfg.Headers.File; file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				if gridOpts.NestedHeaders, err = headers.ParseConfig(data); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}
			g, err := grid.New(gridOpts)
			if err != nil {
				return err
			}
			g.HideRows(hideRows...)
			g.HideColumns(hideColumns...)
			for _, s := range collapse {
				at, err := parseCoords(s)
				if err != nil {
					return err
				}
				g.CollapseHeader(at.column, at.level)
			}

			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"axis", "physical", "visual", "rendered", "hidden"})
			tbl.AppendRow(table.Row{"rows", g.RowMapper().NumberOfIndexes(), g.CountRows(), g.CountRenderedRows(), fmt.Sprint(g.RowMapper().HiddenIndexes())})
			tbl.AppendRow(table.Row{"columns", g.ColumnMapper().NumberOfIndexes(), g.CountColumns(), g.CountRenderedColumns(), fmt.Sprint(g.ColumnMapper().HiddenIndexes())})
			tbl.AppendFooter(table.Row{"header levels", g.Headers().LayersCount()})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "collapse the header at column:level")
	cmd.Flags().IntSliceVar(&hideColumns, "hide-columns", nil, "visual columns to hide")
	cmd.Flags().IntSliceVar(&hideRows, "hide-rows", nil, "visual rows to hide")
	return cmd
}
