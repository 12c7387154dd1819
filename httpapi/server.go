// Package httpapi exposes the validator and registry over HTTP.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	propcheck "github.com/openregister/propcheck"
	"github.com/openregister/propcheck/registry"
	"github.com/openregister/propcheck/upload"
)

// Server wires the upload resolver, validator and registry service into
// an echo application.
type Server struct {
	echo      *echo.Echo
	service   *registry.Service
	resolver  *upload.Resolver
	validator *propcheck.Validator
	logger    *slog.Logger
}

// New builds a Server and registers its routes.
func New(svc *registry.Service, res *upload.Resolver, v *propcheck.Validator, logger *slog.Logger) *Server {
	if v == nil {
		v = propcheck.New()
	}
	if res == nil {
		res = upload.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true

	s := &Server{echo: e, service: svc, resolver: res, validator: v, logger: logger}

	e.POST("/schemas", s.createSchema)
	e.GET("/schemas", s.listSchemas)
	e.GET("/schemas/:id", s.getSchema)
	e.DELETE("/schemas/:id", s.deleteSchema)

	e.GET("/meta/types", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"types": v.ValidTypes()})
	})
	e.GET("/meta/formats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"formats": v.ValidStringFormats()})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

// Handler returns the http.Handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves until the listener fails.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

// createSchema resolves the upload payload, validates the schema's
// properties and persists it. Validation failures answer 400 with the
// full issue list; upload-source failures answer 400 with the source
// error taxonomy.
func (s *Server) createSchema(c echo.Context) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": map[string]any{"code": upload.CodeDecodeFailed, "message": "request body must be a JSON object"},
		})
	}

	doc, err := s.resolver.Resolve(c.Request().Context(), payload)
	if err != nil {
		var se *upload.SourceError
		if errors.As(err, &se) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": map[string]any{"code": se.Code, "message": se.Message},
			})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	sc := schemaFromDocument(doc)
	if sc == nil {
		iss := propcheck.Issues{{
			Path:    "/properties",
			Code:    propcheck.CodeInvalidPropertyShape,
			Message: "properties must be an object",
		}}
		return c.JSON(http.StatusBadRequest, ErrorPayload(iss))
	}
	if err := s.service.RegisterSchema(c.Request().Context(), sc); err != nil {
		if iss, ok := propcheck.AsIssues(err); ok {
			return c.JSON(http.StatusBadRequest, ErrorPayload(iss))
		}
		s.logger.ErrorContext(c.Request().Context(), "schema store failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "storage failure"})
	}
	return c.JSON(http.StatusCreated, sc)
}

func (s *Server) getSchema(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid schema id"})
	}
	sc, err := s.service.GetSchema(c.Request().Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "schema not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "storage failure"})
	}
	return c.JSON(http.StatusOK, sc)
}

func (s *Server) deleteSchema(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid schema id"})
	}
	err = s.service.DeleteSchema(c.Request().Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "schema not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "storage failure"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listSchemas(c echo.Context) error {
	out, err := s.service.ListSchemas(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "storage failure"})
	}
	return c.JSON(http.StatusOK, map[string]any{"schemas": out})
}

// schemaFromDocument maps a decoded schema document onto a registry
// Schema. A document without metadata keys is treated as a bare
// properties map. A "properties" key that is not an object yields nil.
func schemaFromDocument(doc map[string]any) *registry.Schema {
	sc := &registry.Schema{}
	if t, ok := doc["title"].(string); ok {
		sc.Title = t
	}
	if v, ok := doc["version"].(string); ok {
		sc.Version = v
	}
	raw, has := doc["properties"]
	if !has {
		if sc.Title == "" && sc.Version == "" {
			sc.Properties = doc
		} else {
			sc.Properties = map[string]any{}
		}
		return sc
	}
	props, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	sc.Properties = props
	return sc
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []propcheck.Issue) map[string]any {
	return map[string]any{"issues": issues}
}
