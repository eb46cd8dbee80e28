package server

import "net/http"

// CallbackRouter is the [Router] for the local OAuth callback server.
//
// Routes use [http.ServeMux] method patterns, so a known path requested with the wrong method gets 405 and an
// unknown path gets 404. Middleware wraps the whole mux, so rejected requests pass through it too.
type CallbackRouter struct {
	mux        *http.ServeMux
	middleware []Middleware
}

var _ Router = (*CallbackRouter)(nil)

// NewCallbackRouter creates a router with the given middleware, first outermost.
func NewCallbackRouter(middleware ...Middleware) *CallbackRouter {
	return &CallbackRouter{mux: http.NewServeMux(), middleware: middleware}
}

// Use appends middleware. It applies to routes registered before and after the call.
func (r *CallbackRouter) Use(middleware ...Middleware) {
	r.middleware = append(r.middleware, middleware...)
}

// Handle registers handler for method and path. GET also matches HEAD.
func (r *CallbackRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(method+" "+path, handler)
}

// Handler registers every route returned by [Handler.Routes] for GET, the method a browser redirect uses.
func (r *CallbackRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(http.MethodGet, route, handler)
	}
}

func (r *CallbackRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Apply(r.mux).ServeHTTP(w, req)
}

// Apply wraps handler with the router's middleware.
func (r *CallbackRouter) Apply(handler http.Handler) http.Handler {
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	return handler
}
