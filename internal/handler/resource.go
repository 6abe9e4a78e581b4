package handler // handler package contains the HTTP handlers of the sightings API

import (
    "context"  // per-call timeouts for store operations
    "fmt"      // message formatting with path ids
    "net/http" // HTTP status codes
    "time"     // store timeout

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/wildlife-sightings/internal/logging" // request-scoped error logging
)

// dbTimeout bounds every store call made by a handler.
const dbTimeout = 5 * time.Second

// Store is the persistence contract of a flat collection resource.
// Update returns (nil, nil) when no row has the given id.
type Store[T any] interface {
    List(ctx context.Context) ([]T, error)
    Create(ctx context.Context, v T) (T, error)
    Update(ctx context.Context, id string, v T) (*T, error)
    Delete(ctx context.Context, id string) error
}

// Messages holds the fixed client-facing texts of one resource.  Update and
// DeleteFailed are format strings taking the path id.
type Messages struct {
    ListFailed   string
    CreateFailed string
    UpdateFailed string
    Deleted      string
    DeleteFailed string
}

// Resource serves list/create/update/delete for one collection.
type Resource[T any] struct {
    Store    Store[T]
    Msg      Messages
    OnCreate func(ctx context.Context, created T) // optional hook run after a successful create
}

// NewResource builds a Resource and panics if store is nil.
func NewResource[T any](store Store[T], msg Messages) *Resource[T] {
    if store == nil { // a resource without a store cannot serve anything
        panic("nil store passed to NewResource")
    }
    return &Resource[T]{Store: store, Msg: msg}
}

// List handles GET /api/<collection>.
func (h *Resource[T]) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Store.List(ctx)
    if err != nil {
        return storeFailure(c, err, h.Msg.ListFailed)
    }
    if items == nil { // always answer with an array
        items = []T{}
    }
    return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/<collection> and answers with the stored row.
func (h *Resource[T]) Create(c echo.Context) error {
    var body T
    if err := c.Bind(&body); err != nil { // reject bodies that are not JSON
        return invalidBody(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    created, err := h.Store.Create(ctx, body)
    if err != nil {
        return storeFailure(c, err, h.Msg.CreateFailed)
    }
    if h.OnCreate != nil {
        h.OnCreate(c.Request().Context(), created)
    }
    return c.JSON(http.StatusOK, created)
}

// Update handles PUT /api/<collection>/:id.  When no row matches, the
// response is 200 with an empty body.
func (h *Resource[T]) Update(c echo.Context) error {
    id := c.Param("id")
    var body T
    if err := c.Bind(&body); err != nil {
        return invalidBody(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    updated, err := h.Store.Update(ctx, id, body)
    if err != nil {
        return storeFailure(c, err, fmt.Sprintf(h.Msg.UpdateFailed, id))
    }
    if updated == nil { // nothing matched: silent success
        return c.NoContent(http.StatusOK)
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/<collection>/:id.  Deleting an absent id
// still succeeds.
func (h *Resource[T]) Delete(c echo.Context) error {
    id := c.Param("id")

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Store.Delete(ctx, id); err != nil {
        return storeFailure(c, err, fmt.Sprintf(h.Msg.DeleteFailed, id))
    }
    return c.JSON(http.StatusOK, echo.Map{"message": h.Msg.Deleted})
}

// storeFailure logs err with the request id and answers 500 with msg only.
func storeFailure(c echo.Context, err error, msg string) error {
    logging.Ctx(c.Request().Context()).Error().Err(err).
        Str("method", c.Request().Method).
        Str("path", c.Request().URL.Path).
        Msg(msg)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

func invalidBody(c echo.Context, err error) error {
    logging.Ctx(c.Request().Context()).Debug().Err(err).Msg("invalid request body")
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de la solicitud inválido"})
}
