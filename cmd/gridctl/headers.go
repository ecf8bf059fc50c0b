package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"gridmap/pkg/headers"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("some header files are invalid")

func headersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Work with nested headers files",
	}
	cmd.AddCommand(headersShowCmd())
	cmd.AddCommand(headersValidateCmd())
	return cmd
}

func headersShowCmd() *cobra.Command {
	var collapse []string
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render the nested headers of a file",
		Long: `Render the nested headers of a file as a table, one row per level.

Examples:
  gridctl headers show headers.yaml
  gridctl headers show --collapse 1:0 headers.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadHeaders(args[0])
			if err != nil {
				return err
			}
			hidden, err := applyCollapses(state, collapse)
			if err != nil {
				return err
			}
			renderHeaders(cmd.OutOrStdout(), state, hidden)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "collapse the header at column:level before rendering")
	return cmd
}

func headersValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate nested headers files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(cmd.OutOrStdout(), args)
		},
	}
}

func loadHeaders(path string) (*headers.ColumnStatesManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config, err := headers.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	state := headers.NewColumnStatesManager()
	if err := state.SetState(config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

type coords struct {
	column, level int
}

func parseCoords(s string) (coords, error) {
	column, level, ok := strings.Cut(s, ":")
	if !ok {
		return coords{}, fmt.Errorf("invalid coordinates %q, expected column:level", s)
	}
	c, err := strconv.Atoi(column)
	if err != nil {
		return coords{}, fmt.Errorf("invalid column in %q: %w", s, err)
	}
	l, err := strconv.Atoi(level)
	if err != nil {
		return coords{}, fmt.Errorf("invalid level in %q: %w", s, err)
	}
	return coords{column: c, level: l}, nil
}

// applyCollapses returns the columns hidden by the collapsed headers.
func applyCollapses(state *headers.ColumnStatesManager, coords []string) (map[int]bool, error) {
	hidden := make(map[int]bool)
	for _, s := range coords {
		at, err := parseCoords(s)
		if err != nil {
			return nil, err
		}
		result := state.TriggerNodeModification(headers.ActionCollapse, at.column, at.level)
		for _, column := range result.AffectedColumns {
			hidden[column] = true
		}
	}
	return hidden, nil
}

func renderHeaders(w io.Writer, state *headers.ColumnStatesManager, hidden map[int]bool) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	visible := make([]int, 0, state.ColumnsCount())
	header := table.Row{"level"}
	for column := 0; column < state.ColumnsCount(); column++ {
		if !hidden[column] {
			visible = append(visible, column)
			header = append(header, column)
		}
	}
	tbl.AppendHeader(header)

	for level := 0; level < state.LayersCount(); level++ {
		row := table.Row{level}
		label := ""
		for _, column := range visible {
			settings, _ := state.ColumnSettings(column, level)
			if !settings.Hidden {
				label = settings.Label
				if settings.IsCollapsed {
					label += " [+]"
				}
			}
			row = append(row, label)
		}
		tbl.AppendRow(row, table.RowConfig{AutoMerge: true})
	}
	tbl.Render()
}

type validation struct {
	path    string
	layers  int
	columns int
	err     error
}

func validateFiles(w io.Writer, paths []string) error {
	pool, err := ants.NewPool(min(len(paths), runtime.NumCPU()))
	if err != nil {
		return err
	}
	defer pool.Release()

	results := make([]validation, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i] = validateFile(path)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = validation{path: path, err: submitErr}
		}
	}
	wg.Wait()

	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			fail.Fprintf(w, "FAIL %s: %v\n", res.path, res.err)
			continue
		}
		ok.Fprintf(w, "ok   %s (%d levels, %d columns)\n", res.path, res.layers, res.columns)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errValidationFailed, failed, len(paths))
	}
	return nil
}

func validateFile(path string) validation {
	state, err := loadHeaders(path)
	if err != nil {
		return validation{path: path, err: err}
	}
	return validation{path: path, layers: state.LayersCount(), columns: state.ColumnsCount()}
}
