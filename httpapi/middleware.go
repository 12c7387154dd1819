package httpapi

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	propcheck "github.com/openregister/propcheck"
)

// ctxKeyProperties is a typed context key for the validated properties map.
type ctxKeyProperties struct{}

// ValidateDocument parses the request body as a properties map, validates
// it, and stores the map in the request context on success. Failures
// answer 400 with the issue list.
func ValidateDocument(v *propcheck.Validator) echo.MiddlewareFunc {
	if v == nil {
		v = propcheck.New()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dec := json.NewDecoder(c.Request().Body)
			dec.UseNumber()
			var props map[string]any
			if err := dec.Decode(&props); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": "request body must be a JSON object"})
			}
			if err := v.ValidateProperties(props, ""); err != nil {
				if iss, ok := propcheck.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := context.WithValue(c.Request().Context(), ctxKeyProperties{}, props)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetProperties fetches the validated properties map stored by
// ValidateDocument.
func GetProperties(c echo.Context) (map[string]any, bool) {
	v, ok := c.Request().Context().Value(ctxKeyProperties{}).(map[string]any)
	return v, ok
}
