package repository

import (
	"database/sql"

	"github.com/iliyamo/wildlife-sightings/internal/model"
)

// NewImageRepo returns the table gateway for `imagenes`, scoped by the
// parent sighting through id_avistamiento.
func NewImageRepo(db *sql.DB) *Table[model.Image] {
	return NewTable(db, TableSpec[model.Image]{
		Name:       "imagenes",
		Columns:    []string{"url", "metadatos"},
		Projection: []string{"id", "id_avistamiento", "url", "metadatos"},
		Parent:     "id_avistamiento",
		Scan: func(r rowScanner, i *model.Image) error {
			return r.Scan(&i.ID, &i.IDAvistamiento, &i.URL, &i.Metadatos)
		},
		Args: func(i *model.Image) []any {
			return []any{i.URL, i.Metadatos}
		},
	})
}
