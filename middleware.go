package router

import "github.com/valyala/fasthttp"

// Middleware wraps the handler of an action.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func chain(handler fasthttp.RequestHandler, middleware []Middleware) fasthttp.RequestHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return handler
}
