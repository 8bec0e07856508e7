package main

import (
	"errors"
	"fmt"
	"os"

	router "github.com/fasthttp/routetable"
	"github.com/fasthttp/routetable/config"
	"github.com/fasthttp/routetable/routing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	settings config.Settings
	log      *zap.Logger
}

// flagKeys maps persistent flags to settings keys.
var flagKeys = map[string]string{
	"routes":              "routes",
	"case-insensitive":    "case_insensitive",
	"site-prefix":         "site_prefix",
	"action-prefix":       "action_prefix",
	"default-action":      "default_action",
	"max-variable-tokens": "max_variable_tokens",
	"query-separator":     "query_separator",
	"log-level":           "log_level",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Match paths and generate links with a module/action route file",
		Long: `routectl compiles a route file and resolves paths to module/action pairs,
or module/action pairs back to paths.

Settings are read, by increasing priority, from .routectl.yml (or the file
given by --config or ROUTECTL_CONFIG_FILE), ROUTECTL_* environment
variables and command-line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "settings file (default is .routectl.yml)")
	flags.StringP("routes", "r", "routes.yml", "route file")
	flags.Bool("case-insensitive", false, "match literal path tokens regardless of case")
	flags.String("site-prefix", "", "path the site is mounted on")
	flags.String("action-prefix", routing.DefaultActionPrefix, "prefix stripped from action names")
	flags.String("default-action", router.DefaultAction, "action of link targets naming only a module")
	flags.Int("max-variable-tokens", 32, "tokens a single variable may capture, 0 for no limit")
	flags.String("query-separator", routing.DefaultQuerySeparator, "separator of generated query arguments")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")

	for name, key := range flagKeys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		newMatchCmd(a),
		newLinkCmd(a),
		newListCmd(a),
		newServeCmd(a),
	)

	return cmd
}

func (a *app) init() error {
	if a.cfgFile == "" {
		a.cfgFile = os.Getenv(config.EnvPrefix + "_CONFIG_FILE")
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".routectl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}

	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}

	log, err := config.NewLogger(settings.LogLevel)
	if err != nil {
		return err
	}

	a.settings = settings
	a.log = log

	return nil
}

// table compiles the route file. Skipped declarations are logged by the
// compiler and do not fail the command.
func (a *app) table() (*routing.Table, error) {
	table, err := config.LoadTable(a.settings.Routes, a.settings.Options(a.log))
	if table == nil {
		return nil, err
	}

	return table, nil
}

func (a *app) router(table *routing.Table) *router.Router {
	r := router.New(table)
	r.SitePrefix = a.settings.SitePrefix
	r.DefaultAction = a.settings.DefaultAction
	r.Logger = a.log

	if a.settings.StaticPath != "" {
		r.ServeFiles(a.settings.StaticPath, a.settings.StaticDir)
	}

	return r
}

// jsonArgs renders arguments as JSON values: a scalar as a string, a list
// as an array, null as null.
func jsonArgs(args routing.Args) map[string]any {
	out := make(map[string]any, len(args))

	for name, v := range args {
		switch {
		case v.IsNull():
			out[name] = nil
		case v.IsList():
			out[name] = v.Strings()
		default:
			out[name] = v.String()
		}
	}

	return out
}
