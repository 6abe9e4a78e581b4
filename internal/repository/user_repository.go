package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wildlife-sightings/internal/model"
	"github.com/iliyamo/wildlife-sightings/internal/utils"
)

var userColumns = []string{"nombre", "email", "contraseña"}

// UserRepo mirrors the `usuarios` table.  Reads and mutation results never
// include the credential column; only GetByEmail returns the stored hash.
type UserRepo struct {
	DB    *sql.DB
	Cost  int
	table *Table[model.User]
}

func NewUserRepo(db *sql.DB, bcryptCost int) *UserRepo {
	return &UserRepo{
		DB:   db,
		Cost: bcryptCost,
		table: NewTable(db, TableSpec[model.User]{
			Name:       "usuarios",
			Columns:    userColumns,
			Projection: []string{"id", "nombre", "email", "fecha_registro"},
			Scan: func(r rowScanner, u *model.User) error {
				return r.Scan(&u.ID, &u.Nombre, &u.Email, &u.FechaRegistro)
			},
			Args: func(u *model.User) []any {
				return []any{u.Nombre, u.Email, u.Contrasena}
			},
		}),
	}
}

// List returns every user without the credential column.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	return r.table.List(ctx)
}

// Create hashes the credential and inserts the user.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.hash(&u); err != nil {
		return model.User{}, err
	}
	return r.table.Create(ctx, u)
}

// Update overwrites every column of user id, hashing the new credential.
// It returns nil when no user has that id.
func (r *UserRepo) Update(ctx context.Context, id string, u model.User) (*model.User, error) {
	if err := r.hash(&u); err != nil {
		return nil, err
	}
	return r.table.Update(ctx, id, u)
}

// Delete removes user id; absent ids are not an error.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

// GetByEmail fetches the full row, including the stored hash, for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nombre, email, contraseña, fecha_registro FROM usuarios WHERE email = $1 LIMIT 1",
		email).Scan(&u.ID, &u.Nombre, &u.Email, &u.Contrasena, &u.FechaRegistro)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// hash replaces a plain credential with its bcrypt hash.  A nil credential
// stays nil and is stored as NULL.
func (r *UserRepo) hash(u *model.User) error {
	if u.Contrasena == nil {
		return nil
	}
	h, err := utils.HashPassword(string(*u.Contrasena), r.Cost)
	if err != nil {
		return err
	}
	hashed := model.Text(h)
	u.Contrasena = &hashed
	return nil
}
