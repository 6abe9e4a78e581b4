package handler

import (
    "bytes"
    "mime/multipart"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/jarcoal/httpmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/wildlife-sightings/internal/detect"
)

const detectURL = "https://detector.test/detect"

func upload(t *testing.T, h echo.HandlerFunc, field string, data []byte) *httptest.ResponseRecorder {
    t.Helper()
    var buf bytes.Buffer
    mw := multipart.NewWriter(&buf)
    if field != "" {
        fw, err := mw.CreateFormFile(field, "foto.jpg")
        require.NoError(t, err)
        _, _ = fw.Write(data)
    }
    require.NoError(t, mw.Close())

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/api/detect", &buf)
    req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
    rec := httptest.NewRecorder()
    _ = h(e.NewContext(req, rec))
    return rec
}

func newDetectHandler(mt *httpmock.MockTransport, limit int64) *DetectHandler {
    client := detect.New(detectURL, time.Second, 5, detect.WithHTTPClient(&http.Client{Transport: mt}))
    return NewDetectHandler(client, limit)
}

func TestDetect_RelaysUpstreamJSON(t *testing.T) {
    mt := httpmock.NewMockTransport()
    mt.RegisterResponder(http.MethodPost, detectURL,
        httpmock.NewStringResponder(http.StatusOK, `{"especie":"Tremarctos ornatus","confianza":0.91}`))

    rec := upload(t, newDetectHandler(mt, 1<<20).Detect, "image", []byte("JPEG"))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"especie":"Tremarctos ornatus","confianza":0.91}`, rec.Body.String())
    assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestDetect_Failures(t *testing.T) {
    mt := httpmock.NewMockTransport()
    mt.RegisterResponder(http.MethodPost, detectURL, httpmock.NewStringResponder(http.StatusBadGateway, `bad gateway`))
    h := newDetectHandler(mt, 512)

    for name, rec := range map[string]*httptest.ResponseRecorder{
        "missing file":   upload(t, h.Detect, "", nil),
        "wrong field":    upload(t, h.Detect, "file", []byte("JPEG")),
        "too large":      upload(t, h.Detect, "image", bytes.Repeat([]byte("x"), 1024)),
        "upstream error": upload(t, h.Detect, "image", []byte("JPEG")),
    } {
        assert.Equal(t, http.StatusInternalServerError, rec.Code, name)
        assert.JSONEq(t, `{"error":"Error al procesar la imagen"}`, rec.Body.String(), name)
    }
    assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestRootAndHealth(t *testing.T) {
    rec := serve(Root, http.MethodGet, "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "<h1>Proyecto backend</h1>")
    assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")

    rec = serve(Health, http.MethodGet, "")
    assert.Equal(t, "ok", rec.Body.String())
}
