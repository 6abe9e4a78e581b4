package repository

import (
	"database/sql"

	"github.com/iliyamo/wildlife-sightings/internal/model"
)

var speciesColumns = []string{"nombre_cientifico", "nombre_comun", "descripcion", "estado_conservacion", "habitat"}

// NewSpeciesRepo returns the table gateway for `especies`.
func NewSpeciesRepo(db *sql.DB) *Table[model.Species] {
	return NewTable(db, TableSpec[model.Species]{
		Name:       "especies",
		Columns:    speciesColumns,
		Projection: append([]string{"id"}, speciesColumns...),
		Scan: func(r rowScanner, s *model.Species) error {
			return r.Scan(&s.ID, &s.NombreCientifico, &s.NombreComun, &s.Descripcion, &s.EstadoConservacion, &s.Habitat)
		},
		Args: func(s *model.Species) []any {
			return []any{s.NombreCientifico, s.NombreComun, s.Descripcion, s.EstadoConservacion, s.Habitat}
		},
	})
}
