package api_test

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withChiParam attaches a chi route parameter to the request, standing in
// for the router when a handler is invoked directly.
func withChiParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}
