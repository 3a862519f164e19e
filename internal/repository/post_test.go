package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellitas/huellitas-api/internal/model"
)

func newPostMock(t *testing.T) (*MySQLPostRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostRepository(db), mock
}

func postRows(p *model.Post) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tipo", "estado", "titulo", "descripcion", "raza", "lugar", "fecha",
		"sexo", "tamanio", "color", "detalles", "edad", "afinidad", "energia", "castrado",
		"whatsapp", "img", "user_id", "nombre", "correo", "telefono", "created_at",
	}).AddRow(
		p.ID, p.Type, p.Status, p.Title, p.Description, p.Breed, p.Place, p.Date,
		p.Sex, p.Size, p.Color, p.Details, p.Age, p.Affinity, p.Energy, p.Neutered,
		p.Whatsapp, p.Img, p.UserID, p.OwnerName, p.OwnerEmail, p.OwnerPhone, p.CreatedAt,
	)
}

func samplePost() *model.Post {
	return &model.Post{
		ID: 1, Type: model.PostTypeLost, Status: model.PostStatusActive,
		Title: "SE PERDIÓ FIRULAIS", Description: "SE ESCAPÓ DEL PATIO",
		Breed: "MESTIZO", Place: "PARQUE CENTENARIO", Date: "2026-08-22",
		Sex: "MACHO", Size: "MEDIANO", Color: "MARRÓN", Age: "ADULTO",
		Whatsapp: "+54 11 4455-6677", Img: "https://res.cloudinary.com/x/y/z.jpg",
		UserID: 7, OwnerName: "LUCIA", OwnerEmail: "lucia@mail.com", OwnerPhone: "1144556677",
		CreatedAt: time.Now(),
	}
}

func TestPostGetByIDExcludesInactive(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM publicaciones p JOIN users u ON u.id = p.user_id WHERE p.id = \? AND p.estado <> \?`).
		WithArgs(int64(1), model.PostStatusInactive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 1, true)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGetByID(t *testing.T) {
	repo, mock := newPostMock(t)

	want := samplePost()
	mock.ExpectQuery(`SELECT (.+) FROM publicaciones p JOIN users u ON u.id = p.user_id WHERE p.id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(postRows(want))

	got, err := repo.GetByID(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.OwnerEmail, got.OwnerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListFilter(t *testing.T) {
	repo, mock := newPostMock(t)

	// public listing: drop INACTIVO, match type, paginate
	mock.ExpectQuery(`SELECT (.+) FROM publicaciones p JOIN users u (.+) WHERE p.estado <> \? AND p.tipo = \? ORDER BY p.created_at DESC, p.id DESC LIMIT \? OFFSET \?`).
		WithArgs(model.PostStatusInactive, model.PostTypeLost, int64(10), int64(0)).
		WillReturnRows(postRows(samplePost()))

	posts, err := repo.List(context.Background(), model.PostFilter{
		ExcludeStatus: model.PostStatusInactive,
		Type:          model.PostTypeLost,
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "SE PERDIÓ FIRULAIS", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListSearchMatchesEveryTextColumn(t *testing.T) {
	repo, mock := newPostMock(t)

	args := make([]driver.Value, 0, len(searchColumns))
	for range searchColumns {
		args = append(args, "%firu%")
	}
	mock.ExpectQuery(`SELECT (.+) WHERE \(LOWER\(p.titulo\) LIKE \? ESCAPE (.+) OR (.+)\) ORDER BY`).
		WithArgs(args...).
		WillReturnRows(postRows(samplePost()))

	posts, err := repo.List(context.Background(), model.PostFilter{Search: "FIRU"})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListSearchEscapesWildcards(t *testing.T) {
	repo, mock := newPostMock(t)

	// "100%" must match the literal substring, not every row
	args := make([]driver.Value, 0, len(searchColumns))
	for range searchColumns {
		args = append(args, `%100\%%`)
	}
	mock.ExpectQuery(`SELECT (.+) WHERE \(LOWER\(p.titulo\) LIKE \? ESCAPE (.+)\) ORDER BY`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, err := repo.List(context.Background(), model.PostFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostCount(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM publicaciones p JOIN users u (.+) WHERE p.estado <> \?`).
		WithArgs(model.PostStatusInactive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.Count(context.Background(), model.PostFilter{ExcludeStatus: model.PostStatusInactive})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostSetStatus(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectExec(`UPDATE publicaciones SET estado = \? WHERE id = \?`).
		WithArgs(model.PostStatusInactive, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), 1, model.PostStatusInactive))
	assert.NoError(t, mock.ExpectationsWereMet())
}
