// Package http is the transport seam modules mount against: a chi backed Router,
// the JSON envelope every endpoint answers with and the server lifecycle
package http

import "net/http"

// Handler is a plain net/http handler func
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules see, chi stays behind it
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
