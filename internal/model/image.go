package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
)

// Image represents a row in the `imagenes` table.  Every image belongs to
// one sighting through IDAvistamiento.
type Image struct {
    ID             int64    `json:"id"`                                     // imagenes.id
    IDAvistamiento *ID      `json:"id_avistamiento" form:"id_avistamiento"` // imagenes.id_avistamiento
    URL            *Text    `json:"url" form:"url"`                         // imagenes.url
    Metadatos      Metadata `json:"metadatos" form:"metadatos"`             // imagenes.metadatos (JSONB)
}

// Metadata is an arbitrary JSON document stored in a JSONB column and
// relayed verbatim.  The zero value encodes as null.
type Metadata json.RawMessage

// MarshalJSON writes the raw document, or null when empty.
func (m Metadata) MarshalJSON() ([]byte, error) {
    if len(m) == 0 {
        return []byte("null"), nil
    }
    return m, nil
}

// UnmarshalJSON keeps a copy of the raw document.  A JSON null resets m.
func (m *Metadata) UnmarshalJSON(b []byte) error {
    if string(b) == "null" {
        *m = nil
        return nil
    }
    *m = append((*m)[:0], b...)
    return nil
}

// UnmarshalText keeps a form value as the document text.  The store
// rejects it when it is not valid JSON.
func (m *Metadata) UnmarshalText(b []byte) error {
    *m = append((*m)[:0], b...)
    return nil
}

// Value sends the document as text so the driver casts it to JSONB.
func (m Metadata) Value() (driver.Value, error) {
    if len(m) == 0 {
        return nil, nil
    }
    return string(m), nil
}

// Scan accepts the text or byte forms drivers use for JSON columns.
func (m *Metadata) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *m = nil
    case []byte:
        *m = append(Metadata(nil), v...)
    case string:
        *m = Metadata(v)
    default:
        return fmt.Errorf("metadatos: unsupported type %T", src)
    }
    return nil
}
