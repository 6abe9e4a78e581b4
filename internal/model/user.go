package model

import "time"

// User represents an application user record as stored in the
// `usuarios` table.  Contrasena holds the bcrypt hash once stored; it is
// only populated on input and by the login lookup, never by list or
// mutation projections, so it is omitted from JSON when nil.
type User struct {
    ID            int64      `json:"id"`                                     // usuarios.id
    Nombre        *Text      `json:"nombre" form:"nombre"`                   // usuarios.nombre
    Email         *Text      `json:"email" form:"email"`                     // usuarios.email
    Contrasena    *Text      `json:"contraseña,omitempty" form:"contraseña"` // usuarios.contraseña
    FechaRegistro *time.Time `json:"fecha_registro"`                         // usuarios.fecha_registro (server-assigned)
}
