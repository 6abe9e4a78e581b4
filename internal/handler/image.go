package handler

import (
    "context"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/wildlife-sightings/internal/model"
)

// ImageStore persists images scoped to their parent sighting.
type ImageStore interface {
    ListByParent(ctx context.Context, parentID string) ([]model.Image, error)
    CreateUnder(ctx context.Context, parentID string, v model.Image) (model.Image, error)
    DeleteUnder(ctx context.Context, id, parentID string) error
}

// ImageHandler serves /api/avistamientos/:avistamientoId/imagenes.
type ImageHandler struct {
    Images ImageStore
}

// NewImageHandler panics if store is nil.
func NewImageHandler(store ImageStore) *ImageHandler {
    if store == nil {
        panic("nil store passed to NewImageHandler")
    }
    return &ImageHandler{Images: store}
}

// List returns the images of one sighting; an unknown sighting yields [].
func (h *ImageHandler) List(c echo.Context) error {
    sid := c.Param("avistamientoId")

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Images.ListByParent(ctx, sid)
    if err != nil {
        return storeFailure(c, err, fmt.Sprintf("Error al obtener imágenes del avistamiento con ID %s", sid))
    }
    if items == nil {
        items = []model.Image{}
    }
    return c.JSON(http.StatusOK, items)
}

// Create stores an image under the sighting named in the path.  Any
// id_avistamiento in the body is ignored.
func (h *ImageHandler) Create(c echo.Context) error {
    sid := c.Param("avistamientoId")
    var body model.Image
    if err := c.Bind(&body); err != nil {
        return invalidBody(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    created, err := h.Images.CreateUnder(ctx, sid, body)
    if err != nil {
        return storeFailure(c, err, fmt.Sprintf("Error al crear imagen para el avistamiento con ID %s", sid))
    }
    return c.JSON(http.StatusOK, created)
}

// Delete removes an image only when it belongs to the sighting in the
// path.  A mismatch deletes nothing and still reports success.
func (h *ImageHandler) Delete(c echo.Context) error {
    sid := c.Param("avistamientoId")
    iid := c.Param("imagenId")

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Images.DeleteUnder(ctx, iid, sid); err != nil {
        return storeFailure(c, err, fmt.Sprintf("Error al eliminar imagen con ID %s del avistamiento con ID %s", iid, sid))
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Imagen eliminada correctamente"})
}
