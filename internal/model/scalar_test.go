package model

import (
    "encoding/json"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestSighting_AcceptsLooseScalars(t *testing.T) {
    var s Sighting
    body := `{"id_especie":"3","id_usuario":1,"ubicacion":12,"comentarios":true,"imagen_url":null}`
    require.NoError(t, json.Unmarshal([]byte(body), &s))

    require.NotNil(t, s.IDEspecie)
    assert.Equal(t, ID("3"), *s.IDEspecie)
    assert.Equal(t, ID("1"), *s.IDUsuario)
    assert.Equal(t, Text("12"), *s.Ubicacion)
    assert.Equal(t, Text("true"), *s.Comentarios)
    assert.Nil(t, s.ImagenURL)
    assert.Nil(t, s.FechaAvistamiento)
}

func TestText_ObjectKeepsJSONText(t *testing.T) {
    var sp Species
    require.NoError(t, json.Unmarshal([]byte(`{"descripcion":{"a": [1, 2]}}`), &sp))
    assert.Equal(t, Text(`{"a":[1,2]}`), *sp.Descripcion)
}

func TestText_InvalidJSONIsAnError(t *testing.T) {
    var sp Species
    assert.Error(t, json.Unmarshal([]byte(`{"habitat":"selva}`), &sp))
}

func TestID_ValueIsSentUnchanged(t *testing.T) {
    for _, raw := range []string{`"3"`, `3`, `"abc"`, `3.5`} {
        var id ID
        require.NoError(t, json.Unmarshal([]byte(raw), &id))
        v, err := id.Value()
        require.NoError(t, err)
        assert.IsType(t, "", v)
    }
}

func TestID_MarshalJSON(t *testing.T) {
    out, err := json.Marshal(struct {
        A ID  `json:"a"`
        B ID  `json:"b"`
        C *ID `json:"c"`
    }{A: "7", B: "x"})
    require.NoError(t, err)
    assert.JSONEq(t, `{"a":7,"b":"x","c":null}`, string(out))
}

func TestScan_FromStore(t *testing.T) {
    var id ID
    require.NoError(t, id.Scan(int64(42)))
    n, ok := id.Int64()
    assert.True(t, ok)
    assert.Equal(t, int64(42), n)

    var txt Text
    day := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
    require.NoError(t, txt.Scan(day))
    assert.Equal(t, Text("2024-05-04T00:00:00Z"), txt)
    require.NoError(t, txt.Scan([]byte("Quito")))
    assert.Equal(t, "Quito", txt.String())
    assert.Error(t, txt.Scan(struct{}{}))
}
