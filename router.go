package router

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fasthttp/routetable/routing"
	"github.com/savsgio/gotils"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// DefaultAction is the action of a link target naming only a module.
const DefaultAction = "index"

var (
	// MatchedRoutePathParam is the param name under which the pattern of the
	// matched route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gotils.RandBytes(make([]byte, 15)))

	// ModuleParam, ActionParam and ArgsParam are the param names under which
	// the matched module, action and routing.Args are stored.
	ModuleParam = fmt.Sprintf("__module::%s__", gotils.RandBytes(make([]byte, 15)))
	ActionParam = fmt.Sprintf("__action::%s__", gotils.RandBytes(make([]byte, 15)))
	ArgsParam   = fmt.Sprintf("__args::%s__", gotils.RandBytes(make([]byte, 15)))
)

// Router dispatches requests to the handler of the module/action resolved
// by a routing table, and generates links with the same table.
type Router struct {
	table atomic.Pointer[routing.Table]

	handlers   map[string]fasthttp.RequestHandler
	registered map[string][]string
	statics    []*staticMount

	// SitePrefix is the path the application is mounted on. It is stripped
	// from requests and prepended to generated links.
	SitePrefix string

	// DefaultAction is used by Link when a target names only a module.
	DefaultAction string

	// If enabled, adds the pattern of the matched route onto the ctx.UserValue
	// context before invoking the handler.
	// The matched route path is only added to handlers of routes that were
	// registered when this option was enabled.
	SaveMatchedRoutePath bool

	// Configurable http.Handler which is called when no matching route is
	// found, or when the matched module/action has no handler. If it is not
	// set, default NotFound is used.
	NotFound fasthttp.RequestHandler

	// DefaultHandler, if set, handles matched routes whose module/action
	// has no registered handler.
	DefaultHandler fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})

	// Logger receives link fallbacks and dispatch diagnostics.
	Logger *zap.Logger

	// Metrics, if set, counts dispatch and link outcomes.
	Metrics *Metrics
}

// New returns a new Router serving the given table.
func New(table *routing.Table) *Router {
	r := &Router{
		handlers:      make(map[string]fasthttp.RequestHandler),
		registered:    make(map[string][]string),
		DefaultAction: DefaultAction,
	}

	r.table.Store(table)

	return r
}

// Table returns the routing table currently served.
func (r *Router) Table() *routing.Table {
	return r.table.Load()
}

// Swap replaces the routing table. Requests in flight keep the table they
// started with.
func (r *Router) Swap(table *routing.Table) {
	r.table.Store(table)
	r.Metrics.swapped(table)
}

func (r *Router) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}

	return r.Logger
}

// Handle registers the handler of the given module and action.
//
// WARNING: Not concurrency-safe! Register every handler before serving.
func (r *Router) Handle(module, action string, handler fasthttp.RequestHandler) {
	validateName("module", module)
	validateName("action", action)

	if handler == nil {
		panic("handler must not be nil")
	}

	key := handlerKey(module, action)
	if _, ok := r.handlers[key]; ok {
		panic("a handler is already registered for '" + module + "/" + action + "'")
	}

	r.handlers[key] = handler
	r.registered[module] = append(r.registered[module], action)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a path.
// This is e.g. useful to build a framework around this router.
// If the path matches a route, it returns the match and the handler
// registered for its module/action, which may be nil.
func (r *Router) Lookup(path string) (*routing.Result, fasthttp.RequestHandler, error) {
	res, err := r.Table().Match(path)
	if err != nil {
		return nil, nil, err
	}

	return res, r.handlers[handlerKey(res.Module, res.Action)], nil
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	// The original path keeps its percent-encoding, tokens are decoded one
	// by one while matching
	path, ok := stripSitePrefix(gotils.B2S(ctx.URI().PathOriginal()), r.SitePrefix)
	if !ok {
		r.notFound(ctx, outcomeNotFound)
		return
	}

	if mount := r.staticMount(path); mount != nil {
		r.Metrics.dispatched(outcomeStatic)
		mount.handler(ctx)
		return
	}

	res, handler, err := r.Lookup(path)
	if err != nil {
		r.notFound(ctx, outcomeNotFound)
		return
	}

	if handler == nil {
		handler = r.DefaultHandler
	}

	if handler == nil {
		r.log().Debug("no handler registered for the matched route",
			zap.String("module", res.Module),
			zap.String("action", res.Action),
			zap.String("url", res.Route.Pattern()),
		)
		r.notFound(ctx, outcomeNoHandler)
		return
	}

	r.saveResult(ctx, res)
	r.Metrics.dispatched(outcomeMatched)

	handler(ctx)
}

func (r *Router) notFound(ctx *fasthttp.RequestCtx, outcome string) {
	r.Metrics.dispatched(outcome)

	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

// saveResult stores the match as user values. A list argument is stored as
// a []string, a scalar as a string.
func (r *Router) saveResult(ctx *fasthttp.RequestCtx, res *routing.Result) {
	for name, v := range res.Args {
		if v.IsList() {
			ctx.SetUserValue(name, v.Strings())
		} else {
			ctx.SetUserValue(name, v.String())
		}
	}

	ctx.SetUserValue(ModuleParam, res.Module)
	ctx.SetUserValue(ActionParam, res.Action)
	ctx.SetUserValue(ArgsParam, res.Args)

	if r.SaveMatchedRoutePath {
		ctx.SetUserValue(MatchedRoutePathParam, res.Route.Pattern())
	}
}

// Link returns the URL of a target, prefixed by the site prefix:
//
//   - "" links to the module/action of the current request, or to the
//     site root outside of a routed request;
//   - "/" links to the site root;
//   - a path of an existing file under a static mount is returned as is;
//   - "module/action", "/module/action" or "module" (DefaultAction) is
//     generated by the routing table, degrading to /module/action?args.
func (r *Router) Link(ctx *fasthttp.RequestCtx, target string, args routing.Args) string {
	switch {
	case target == "":
		module, action := CurrentModule(ctx), CurrentAction(ctx)
		if module == "" {
			return r.root(args)
		}

		return r.link(module, action, args)

	case target == "/":
		return r.root(args)

	case target[0] == '/':
		if r.isStaticFile(target) {
			r.Metrics.linked(outcomeStatic)
			return cleanPrefix(r.SitePrefix) + target
		}

		target = target[1:]
	}

	module, action := splitTarget(target, r.DefaultAction)

	return r.link(module, action, args)
}

func (r *Router) root(args routing.Args) string {
	return cleanPrefix(r.SitePrefix) + "/" + routing.EncodeQuery(args, r.Table().QueryOptions())
}

func (r *Router) link(module, action string, args routing.Args) string {
	table := r.Table()

	link, err := table.Reverse(module, action, args)
	if err != nil {
		r.log().Warn("no route to generate link, using the generic path",
			zap.String("module", module),
			zap.String("action", action),
		)
		r.Metrics.linked(outcomeFallback)

		link = table.Fallback(module, action, args)
	} else {
		r.Metrics.linked(outcomeRouted)
	}

	return cleanPrefix(r.SitePrefix) + link
}

// List returns the registered actions grouped by module
func (r *Router) List() map[string][]string {
	list := make(map[string][]string, len(r.registered))
	for module, actions := range r.registered {
		list[module] = append([]string(nil), actions...)
	}

	return list
}

// CurrentModule returns the module matched for ctx, if any.
func CurrentModule(ctx *fasthttp.RequestCtx) string {
	return userString(ctx, ModuleParam)
}

// CurrentAction returns the action matched for ctx, if any.
func CurrentAction(ctx *fasthttp.RequestCtx) string {
	return userString(ctx, ActionParam)
}

// ArgsFromCtx returns the arguments matched for ctx, if any.
func ArgsFromCtx(ctx *fasthttp.RequestCtx) routing.Args {
	if ctx == nil {
		return nil
	}

	args, _ := ctx.UserValue(ArgsParam).(routing.Args)

	return args
}

func userString(ctx *fasthttp.RequestCtx, key string) string {
	if ctx == nil {
		return ""
	}

	s, _ := ctx.UserValue(key).(string)

	return s
}

func handlerKey(module, action string) string {
	return strings.ToLower(module) + "-" + strings.ToLower(action)
}
