// Package httpkit is what modules import for routing and handler plumbing
// so they never reach into the platform http package directly
package httpkit

import (
	"net/http"

	phttp "meetgrid/internal/platform/net/http"
)

type (
	// Envelope is the body every endpoint answers with
	Envelope = phttp.Envelope
	// Response is a handler outcome
	Response = phttp.Response
	// Handler is a plain handler func
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a bodiless 204
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON decodes and validates a T body before calling fn
// fn may return a Response to pick its own status
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call is JSON for handlers that take no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }

// Param reads the {key} path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }
