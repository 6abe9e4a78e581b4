package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/wildlife-sightings/internal/model"
	"github.com/iliyamo/wildlife-sightings/internal/utils"
)

// hashedArg matches a bcrypt hash of plain.
type hashedArg struct{ plain string }

func (h hashedArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && s != h.plain && utils.VerifyPassword(s, h.plain)
}

func TestUserRepo_ListExcludesCredential(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db, bcrypt.MinCost)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, nombre, email, fecha_registro FROM usuarios").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "email", "fecha_registro"}).
			AddRow(1, "Ana", "ana@example.com", now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Nil(t, users[0].Contrasena)
	assert.Equal(t, now, *users[0].FechaRegistro)
}

func TestUserRepo_CreateHashesCredential(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db, bcrypt.MinCost)
	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO usuarios (nombre, email, contraseña) VALUES ($1, $2, $3) RETURNING id, nombre, email, fecha_registro").
		WithArgs("Ana", "ana@example.com", hashedArg{"secreta"}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "email", "fecha_registro"}).
			AddRow(3, "Ana", "ana@example.com", now))

	u, err := repo.Create(context.Background(), model.User{
		Nombre: str("Ana"), Email: str("ana@example.com"), Contrasena: str("secreta"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Nil(t, u.Contrasena)
}

func TestUserRepo_UpdateWithoutCredentialStoresNull(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db, bcrypt.MinCost)
	mock.ExpectQuery("UPDATE usuarios SET nombre = $1, email = $2, contraseña = $3 WHERE id = $4 RETURNING id, nombre, email, fecha_registro").
		WithArgs("Bea", nil, nil, "8").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "email", "fecha_registro"}))

	u, err := repo.Update(context.Background(), "8", model.User{Nombre: str("Bea")})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db, bcrypt.MinCost)
	q := "SELECT id, nombre, email, contraseña, fecha_registro FROM usuarios WHERE email = $1 LIMIT 1"
	cols := []string{"id", "nombre", "email", "contraseña", "fecha_registro"}

	mock.ExpectQuery(q).WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Ana", "ana@example.com", "$2a$04$hash", time.Now()))
	mock.ExpectQuery(q).WithArgs("nadie@example.com").
		WillReturnRows(sqlmock.NewRows(cols))

	u, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.Contrasena)
	assert.Equal(t, model.Text("$2a$04$hash"), *u.Contrasena)

	_, err = repo.GetByEmail(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db, bcrypt.MinCost)
	mock.ExpectExec("DELETE FROM usuarios WHERE id = $1").WithArgs("2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "2"))
}
