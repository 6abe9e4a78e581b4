package repository

import (
	"database/sql"

	"github.com/iliyamo/wildlife-sightings/internal/model"
)

var sightingColumns = []string{"id_especie", "id_usuario", "fecha_avistamiento", "ubicacion", "imagen_url", "comentarios"}

// NewSightingRepo returns the table gateway for `avistamientos`.
func NewSightingRepo(db *sql.DB) *Table[model.Sighting] {
	return NewTable(db, TableSpec[model.Sighting]{
		Name:       "avistamientos",
		Columns:    sightingColumns,
		Projection: append([]string{"id"}, sightingColumns...),
		Scan: func(r rowScanner, s *model.Sighting) error {
			return r.Scan(&s.ID, &s.IDEspecie, &s.IDUsuario, &s.FechaAvistamiento, &s.Ubicacion, &s.ImagenURL, &s.Comentarios)
		},
		Args: func(s *model.Sighting) []any {
			return []any{s.IDEspecie, s.IDUsuario, s.FechaAvistamiento, s.Ubicacion, s.ImagenURL, s.Comentarios}
		},
	})
}
