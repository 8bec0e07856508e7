package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	router "github.com/fasthttp/routetable"
	"github.com/fasthttp/routetable/config"
	"github.com/fasthttp/routetable/routing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

type description struct {
	Module    string         `json:"module"`
	Action    string         `json:"action"`
	Args      map[string]any `json:"args"`
	Query     map[string]any `json:"query,omitempty"`
	Canonical string         `json:"canonical"`
}

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route file, describing every matched request as JSON",
		Long: `Serve the route file over HTTP. Every matched request is answered with its
module, action, arguments and canonical link. Prometheus metrics are served
on /metrics, and the route file is reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			r := a.router(table)
			r.Metrics = router.NewMetrics(reg, "routectl")
			r.Metrics.Observe(table)
			r.DefaultHandler = describe(r)
			r.PanicHandler = func(ctx *fasthttp.RequestCtx, recovered interface{}) {
				a.log.Error("handler panicked", zap.Any("panic", recovered), zap.ByteString("path", ctx.Path()))
				ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				w, err := config.NewWatcher(a.settings.Routes, a.settings.Options(a.log), r.Swap)
				if err != nil {
					return err
				}
				defer w.Close()

				go func() {
					if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
						a.log.Error("route file watcher stopped", zap.Error(err))
					}
				}()
			}

			metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

			server := &fasthttp.Server{
				Handler: serveHandler(r, metrics),
				Name:    "routectl",
				Logger:  zap.NewStdLog(a.log),
			}

			go func() {
				<-ctx.Done()

				if err := server.Shutdown(); err != nil {
					a.log.Error("failed to shut down", zap.Error(err))
				}
			}()

			a.log.Info("serving routes",
				zap.String("addr", addr),
				zap.String("routes", a.settings.Routes),
				zap.Int("count", table.Len()),
			)

			return server.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the route file when it changes")

	return cmd
}

func serveHandler(r *router.Router, metrics fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == metricsPath {
			metrics(ctx)
			return
		}

		r.Handler(ctx)
	}
}

// describe answers a matched request with its module, action, arguments
// and the link generated back from them.
func describe(r *router.Router) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		args := router.ArgsFromCtx(ctx)

		out := description{
			Module:    router.CurrentModule(ctx),
			Action:    router.CurrentAction(ctx),
			Args:      jsonArgs(args),
			Canonical: r.Link(ctx, "", args),
		}

		if query := ctx.URI().QueryString(); len(query) > 0 {
			out.Query = jsonArgs(routing.ParseQuery(string(query)))
		}

		body, err := json.Marshal(out)
		if err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
			return
		}

		ctx.SetContentType("application/json")
		ctx.SetBody(body)
	}
}
