package router

import (
	"github.com/fasthttp/routetable/routing"
	"github.com/valyala/fasthttp"
)

// Module groups the actions of a module, sharing middleware.
type Module struct {
	router     *Router
	name       string
	middleware []Middleware
}

// Module returns a new group for the actions of the given module.
func (r *Router) Module(name string) *Module {
	validateName("module", name)

	return &Module{router: r, name: name}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Handle registers the handler of the given action, wrapped by the
// middleware added so far.
func (m *Module) Handle(action string, handler fasthttp.RequestHandler) {
	validateName("action", action)

	if handler == nil {
		panic("handler must not be nil")
	}

	m.router.Handle(m.name, action, chain(handler, m.middleware))
}

// AddMiddleware adds a middleware to the actions registered afterwards.
// The first added middleware is the outermost.
func (m *Module) AddMiddleware(mw Middleware) {
	m.middleware = append(m.middleware, mw)
}

// Link returns the URL of an action of the module.
func (m *Module) Link(action string, args routing.Args) string {
	return m.router.link(m.name, action, args)
}
