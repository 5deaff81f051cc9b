package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/api/metrics"
	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

const defaultSample = 6

// ResourceHandler serves one generic catalog resource (packages, guides,
// stories, announcements). The resource definition drives everything; adding
// a resource never means adding a handler.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List returns all documents, optionally filtered by a single field given as
// a sub-path (e.g. GET /stories/user/:email filters on the owner field).
func (h *ResourceHandler) List(c echo.Context) error {
	docs, err := h.service.List(c.Request().Context(), nil)
	if err != nil {
		return err
	}
	return respondDocuments(c, docs)
}

// ListByField serves the /<name>/<field>/:value lookups registered for the
// resource, e.g. stories by author email.
func (h *ResourceHandler) ListByField(field string) echo.HandlerFunc {
	return func(c echo.Context) error {
		docs, err := h.service.List(c.Request().Context(), map[string]any{field: c.Param("value")})
		if err != nil {
			return err
		}
		return respondDocuments(c, docs)
	}
}

// Random returns a pseudo-random sample for discovery pages. The optional
// ?count= parameter is capped by the service.
func (h *ResourceHandler) Random(c echo.Context) error {
	n := defaultSample
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be an integer")
		}
		n = parsed
	}

	docs, err := h.service.RandomSample(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return respondDocuments(c, docs)
}

// Get returns one document by its identifier.
func (h *ResourceHandler) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Create inserts a document and returns the stored version, including the
// generated identifier and server-stamped created_at.
func (h *ResourceHandler) Create(c echo.Context) error {
	var doc map[string]any
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	stored, err := h.service.Create(c.Request().Context(), maybePrincipal(c), doc)
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues(h.service.Definition().Name, "create").Inc()
	return c.JSON(http.StatusCreated, stored)
}

// Update merges fields into an existing document.
func (h *ResourceHandler) Update(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(c.Request().Context(), maybePrincipal(c), c.Param("id"), fields); err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues(h.service.Definition().Name, "update").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "updated"})
}

// Delete removes a document. Deleting an absent id succeeds with no effect.
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), maybePrincipal(c), c.Param("id")); err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues(h.service.Definition().Name, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// respondDocuments always renders a JSON array, never null.
func respondDocuments(c echo.Context, docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}
