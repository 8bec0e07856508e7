package main

import (
	"fmt"
	"strings"

	"github.com/fasthttp/routetable/routing"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "link <module> <action> [name=value ...]",
		Short: "Generate the URL of a module/action",
		Long: `Generate the URL of a module/action from its arguments. A repeated name
becomes a list, a name without '=' is null.

Without a matching route the generic /module/action?args path is printed,
unless --strict is given.`,
		Example: `  routectl link Article show id=42
  routectl link Search results tag=go tag=web`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			module, action := args[0], args[1]
			linkArgs := parseArgs(args[2:])

			if strict {
				if _, err := table.Reverse(module, action, linkArgs); err != nil {
					return err
				}
			}

			r := a.router(table)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Link(nil, "/"+module+"/"+action, linkArgs))

			return err
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when no route generates the link")

	return cmd
}

// parseArgs turns name=value pairs into arguments.
func parseArgs(pairs []string) routing.Args {
	values := make(map[string][]string, len(pairs))

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			if _, seen := values[name]; !seen {
				values[name] = nil
			}

			continue
		}

		values[name] = append(values[name], value)
	}

	args := make(routing.Args, len(values))

	for name, items := range values {
		switch len(items) {
		case 0:
			args[name] = routing.Null()
		case 1:
			args[name] = routing.Scalar(items[0])
		default:
			args[name] = routing.List(items...)
		}
	}

	return args
}
