package model

// Species represents a row in the `especies` table.  Attribute columns
// are nullable; a field missing from a request body is stored as NULL.
//
// Fields:
//
//	ID                 – primary key identifier.
//	NombreCientifico   – scientific name (e.g. Panthera onca).
//	NombreComun        – common name.
//	Descripcion        – free-text description.
//	EstadoConservacion – conservation status.
//	Habitat            – habitat description.
type Species struct {
    ID                 int64 `json:"id"`                                             // especies.id
    NombreCientifico   *Text `json:"nombre_cientifico" form:"nombre_cientifico"`     // especies.nombre_cientifico
    NombreComun        *Text `json:"nombre_comun" form:"nombre_comun"`               // especies.nombre_comun
    Descripcion        *Text `json:"descripcion" form:"descripcion"`                 // especies.descripcion
    EstadoConservacion *Text `json:"estado_conservacion" form:"estado_conservacion"` // especies.estado_conservacion
    Habitat            *Text `json:"habitat" form:"habitat"`                         // especies.habitat
}
