package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reoring/skema"
	"github.com/reoring/skema/middleware"
)

// ValidateJSON builds an instance of t from the request body and stores it in
// the request context, or returns 400 with the error payload.
func ValidateJSON(t *skema.Type) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			in, err := middleware.Build(c.Request(), t)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithInstance(c.Request().Context(), in)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetInstance fetches the built instance from echo.Context.
func GetInstance(c echo.Context) (*skema.Instance, bool) {
	return middleware.InstanceFromContext(c.Request().Context())
}
