package model

// Sighting represents a row in the `avistamientos` table: an observation
// of a species by a user at a place and time.  References to species and
// user are plain ids; integrity is left to the database.
type Sighting struct {
    ID                int64 `json:"id"`                                           // avistamientos.id
    IDEspecie         *ID   `json:"id_especie" form:"id_especie"`                 // avistamientos.id_especie
    IDUsuario         *ID   `json:"id_usuario" form:"id_usuario"`                 // avistamientos.id_usuario
    FechaAvistamiento *Text `json:"fecha_avistamiento" form:"fecha_avistamiento"` // avistamientos.fecha_avistamiento, relayed as the store returns it
    Ubicacion         *Text `json:"ubicacion" form:"ubicacion"`                   // avistamientos.ubicacion
    ImagenURL         *Text `json:"imagen_url" form:"imagen_url"`                 // avistamientos.imagen_url
    Comentarios       *Text `json:"comentarios" form:"comentarios"`               // avistamientos.comentarios
}
