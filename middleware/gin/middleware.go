package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reoring/skema"
	"github.com/reoring/skema/middleware"
)

// ValidateJSON builds an instance of t from the request body, stores it in the
// request context and on failure aborts with 400 and the error payload.
func ValidateJSON(t *skema.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := middleware.Build(c.Request, t)
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithInstance(c.Request.Context(), in))
		c.Next()
	}
}

// GetInstance fetches the built instance from gin.Context.
func GetInstance(c *gin.Context) (*skema.Instance, bool) {
	return middleware.InstanceFromContext(c.Request.Context())
}
