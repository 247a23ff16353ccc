// Package middleware validates HTTP request bodies against a compiled skema
// type and hands the built instance to the next handler through the request
// context. Framework adapters live in the gin and echo submodules.
package middleware

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/reoring/skema"
	"github.com/reoring/skema/source"
)

// ctxKeyInstance is the context key for the built instance.
type ctxKeyInstance struct{}

// ContextWithInstance attaches an instance to the context.
func ContextWithInstance(ctx context.Context, in *skema.Instance) context.Context {
	return context.WithValue(ctx, ctxKeyInstance{}, in)
}

// InstanceFromContext retrieves the instance stored by ContextWithInstance.
func InstanceFromContext(ctx context.Context) (*skema.Instance, bool) {
	in, ok := ctx.Value(ctxKeyInstance{}).(*skema.Instance)
	return in, ok && in != nil
}

// Build decodes a JSON request body and builds an instance of t from it.
func Build(r *http.Request, t *skema.Type) (*skema.Instance, error) {
	bag, err := source.Read(r.Body, source.FormatJSON)
	if err != nil {
		return nil, err
	}
	return t.New(bag)
}

// ErrorPayload shapes an error for JSON responses. skema errors carry their
// code, JSON Pointer and field trail.
func ErrorPayload(err error) map[string]any {
	e, ok := skema.AsError(err)
	if !ok {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{
		"error":   e.Error(),
		"code":    e.Code,
		"pointer": e.Pointer(),
		"trail":   e.Trail(),
	}
}

// ValidateJSON returns net/http middleware that builds an instance of t from
// the request body, stores it in the request context and calls next. Bodies
// that fail to decode or build are answered with 400 and ErrorPayload.
func ValidateJSON(t *skema.Type) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			in, err := Build(r, t)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorPayload(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithInstance(r.Context(), in)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
