package model

import (
    "bytes"
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "strconv"
    "time"
)

// Text is a text column value.  Clients may send any JSON scalar for it:
// strings are unquoted, numbers and booleans keep their literal spelling,
// and objects or arrays keep their JSON text.  The store receives the
// resulting string unchanged.
type Text string

// UnmarshalJSON accepts any JSON value.  A JSON null leaves t untouched.
func (t *Text) UnmarshalJSON(b []byte) error {
    s, ok, err := scalarString(b)
    if err != nil || !ok {
        return err
    }
    *t = Text(s)
    return nil
}

// UnmarshalText binds form and query values.
func (t *Text) UnmarshalText(b []byte) error {
    *t = Text(b)
    return nil
}

// Value sends the text as is.
func (t Text) Value() (driver.Value, error) { return string(t), nil }

// Scan reads text, bytes, numbers and timestamps.  Timestamps use RFC 3339.
func (t *Text) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *t = ""
    case string:
        *t = Text(v)
    case []byte:
        *t = Text(v)
    case time.Time:
        *t = Text(v.Format(time.RFC3339Nano))
    case int64, int, int32, float64, float32, bool:
        *t = Text(fmt.Sprint(v))
    default:
        return fmt.Errorf("text: unsupported type %T", src)
    }
    return nil
}

func (t Text) String() string { return string(t) }

// ID is a reference to another row.  Clients may send it as a number or as
// a string; the store coerces it and rejects values that are not integers.
// Stored ids encode as JSON numbers.
type ID string

// UnmarshalJSON accepts a number, a string, or any other scalar.  A JSON
// null leaves id untouched.
func (id *ID) UnmarshalJSON(b []byte) error {
    s, ok, err := scalarString(b)
    if err != nil || !ok {
        return err
    }
    *id = ID(s)
    return nil
}

// UnmarshalText binds form and query values.
func (id *ID) UnmarshalText(b []byte) error {
    *id = ID(b)
    return nil
}

// MarshalJSON writes integers as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
    if _, ok := id.Int64(); ok {
        return []byte(id), nil
    }
    return json.Marshal(string(id))
}

// Value sends the id as text for the store to coerce.
func (id ID) Value() (driver.Value, error) { return string(id), nil }

// Scan reads integer columns.
func (id *ID) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *id = ""
    case int64:
        *id = ID(strconv.FormatInt(v, 10))
    case int, int32:
        *id = ID(fmt.Sprint(v))
    case []byte:
        *id = ID(v)
    case string:
        *id = ID(v)
    default:
        return fmt.Errorf("id: unsupported type %T", src)
    }
    return nil
}

// Int64 reports the id as an integer when it is one.
func (id ID) Int64() (int64, bool) {
    n, err := strconv.ParseInt(string(id), 10, 64)
    return n, err == nil
}

func (id ID) String() string { return string(id) }

// scalarString flattens one JSON value into the string a store would
// receive for it.  ok is false for null.
func scalarString(b []byte) (s string, ok bool, err error) {
    b = bytes.TrimSpace(b)
    switch {
    case len(b) == 0 || bytes.Equal(b, []byte("null")):
        return "", false, nil
    case b[0] == '"':
        if err := json.Unmarshal(b, &s); err != nil {
            return "", false, err
        }
        return s, true, nil
    case b[0] == '{' || b[0] == '[':
        var buf bytes.Buffer
        if err := json.Compact(&buf, b); err != nil {
            return "", false, err
        }
        return buf.String(), true, nil
    default:
        return string(b), true, nil
    }
}
