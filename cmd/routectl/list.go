package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fasthttp/routetable/routing"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the compiled routes in declaration order",
		Long: `List the compiled routes in declaration order. Routes overridden by a later
declaration of the same pattern still generate links but never match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			return printRoutes(cmd.OutOrStdout(), table, noColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func printRoutes(w io.Writer, table *routing.Table, noColor bool) error {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	if noColor {
		bold.DisableColor()
		gray.DisableColor()
		green.DisableColor()
	}

	reachable := make(map[*routing.Route]bool, table.Len())
	for _, route := range table.Reachable() {
		reachable[route] = true
	}

	headers := []string{"NAME", "PATTERN", "TARGET", "WITH", "ADD"}
	rows := make([][]string, 0, table.Len())

	for _, route := range table.Routes() {
		rows = append(rows, []string{
			route.Name(),
			route.Pattern(),
			route.Module() + "/" + route.Action(),
			constraints(route),
			fixed(route),
		})
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for i, header := range headers {
		bold.Fprint(w, padRight(header, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(w)

	for i, route := range table.Routes() {
		c := green
		if !reachable[route] {
			c = gray
		}

		for j, cell := range rows[i] {
			c.Fprint(w, padRight(cell, widths[j], j == len(headers)-1))
		}

		if !reachable[route] {
			gray.Fprint(w, "  (overridden)")
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

func padRight(s string, width int, last bool) string {
	if last {
		return s
	}

	return s + strings.Repeat(" ", width-len(s)+2)
}

func constraints(route *routing.Route) string {
	var parts []string

	for _, name := range route.Variables() {
		if expr, ok := route.Constraint(name); ok {
			parts = append(parts, name+"="+expr)
		}
	}

	return strings.Join(parts, " ")
}

func fixed(route *routing.Route) string {
	args := route.Fixed()

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+args[name].GoString())
	}

	return strings.Join(parts, " ")
}
