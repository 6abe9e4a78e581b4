package handler

import (
    "context"
    "io"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/wildlife-sightings/internal/logging"
)

// Detector forwards one image to the species-detection service.
type Detector interface {
    Detect(ctx context.Context, filename string, r io.Reader) ([]byte, error)
}

// DetectHandler proxies uploads to the detection service.
type DetectHandler struct {
    Client         Detector
    MaxUploadBytes int64 // 0 disables the limit
}

func NewDetectHandler(client Detector, maxUploadBytes int64) *DetectHandler {
    return &DetectHandler{Client: client, MaxUploadBytes: maxUploadBytes}
}

const detectFailed = "Error al procesar la imagen"

// Detect handles POST /api/detect.  The multipart field "image" is sent
// upstream and the upstream JSON is relayed as is.
func (h *DetectHandler) Detect(c echo.Context) error {
    req := c.Request()
    if h.MaxUploadBytes > 0 {
        req.Body = http.MaxBytesReader(c.Response(), req.Body, h.MaxUploadBytes)
    }
    log := logging.Ctx(req.Context())

    fh, err := c.FormFile("image")
    if err != nil {
        log.Error().Err(err).Msg(detectFailed)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": detectFailed})
    }
    f, err := fh.Open()
    if err != nil {
        log.Error().Err(err).Msg(detectFailed)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": detectFailed})
    }
    defer f.Close()

    body, err := h.Client.Detect(req.Context(), fh.Filename, f)
    if err != nil {
        log.Error().Err(err).Str("filename", fh.Filename).Msg(detectFailed)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": detectFailed})
    }
    return c.JSONBlob(http.StatusOK, body)
}
