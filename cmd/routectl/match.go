package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fasthttp/routetable/routing"
	"github.com/spf13/cobra"
)

type matchOutput struct {
	Module string         `json:"module"`
	Action string         `json:"action"`
	Route  string         `json:"route"`
	Args   map[string]any `json:"args"`
	Query  map[string]any `json:"query,omitempty"`
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a path to its module, action and arguments",
		Long: `Resolve a path, relative to the site prefix, to the module, action and
arguments of the first matching route. A query string is decoded apart.`,
		Example: `  routectl match /article/42
  routectl match '/search/go/web?page=2'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			path, query, _ := strings.Cut(args[0], "?")

			res, err := table.Match(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := matchOutput{
				Module: res.Module,
				Action: res.Action,
				Route:  res.Route.Pattern(),
				Args:   jsonArgs(res.Args),
			}

			if query != "" {
				out.Query = jsonArgs(routing.ParseQuery(query))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(out)
		},
	}
}
