package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/huellitas/huellitas-api/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// searchColumns are the text fields matched by the substring search.
var searchColumns = []string{
	"p.titulo", "p.descripcion", "p.raza", "p.color",
	"p.detalles", "p.edad", "p.lugar", "p.tamanio",
}

// likeEscaper neutralizes LIKE metacharacters so search terms match
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostRepository handles pet-ad persistence.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64, excludeInactive bool) (*model.Post, error)
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, error)
	Count(ctx context.Context, filter model.PostFilter) (int64, error)
	Update(ctx context.Context, post *model.Post) error
	SetStatus(ctx context.Context, id int64, status string) error
}

// MySQLPostRepository is the MySQL implementation of PostRepository.
type MySQLPostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a MySQL-backed post repository.
func NewPostRepository(db *sql.DB) *MySQLPostRepository {
	return &MySQLPostRepository{db: db}
}

const postColumns = `p.id, p.tipo, p.estado, p.titulo, p.descripcion, p.raza, p.lugar, p.fecha,
	p.sexo, p.tamanio, p.color, p.detalles, p.edad, p.afinidad, p.energia, p.castrado,
	p.whatsapp, p.img, p.user_id, u.nombre, u.correo, u.telefono, p.created_at`

const postFrom = ` FROM publicaciones p JOIN users u ON u.id = p.user_id`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID, &post.Type, &post.Status, &post.Title, &post.Description,
		&post.Breed, &post.Place, &post.Date, &post.Sex, &post.Size,
		&post.Color, &post.Details, &post.Age, &post.Affinity, &post.Energy,
		&post.Neutered, &post.Whatsapp, &post.Img, &post.UserID,
		&post.OwnerName, &post.OwnerEmail, &post.OwnerPhone, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// filterClause builds the WHERE clause and arguments for a PostFilter.
func filterClause(filter model.PostFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.ExcludeStatus != "" {
		conds = append(conds, "p.estado <> ?")
		args = append(args, filter.ExcludeStatus)
	}
	if filter.Status != "" {
		conds = append(conds, "p.estado = ?")
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		conds = append(conds, "p.tipo = ?")
		args = append(args, filter.Type)
	}
	if filter.UserID != 0 {
		conds = append(conds, "p.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		likes := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			likes[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\\'`
			args = append(args, pattern)
		}
		conds = append(conds, "("+strings.Join(likes, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create inserts a new post and sets the generated ID on the post struct.
func (r *MySQLPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO publicaciones
		(tipo, estado, titulo, descripcion, raza, lugar, fecha, sexo, tamanio, color,
		 detalles, edad, afinidad, energia, castrado, whatsapp, img, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		post.Type, post.Status, post.Title, post.Description, post.Breed,
		post.Place, post.Date, post.Sex, post.Size, post.Color,
		post.Details, post.Age, post.Affinity, post.Energy, post.Neutered,
		post.Whatsapp, post.Img, post.UserID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// GetByID retrieves a post with its owner display fields. When
// excludeInactive is set, a soft-deleted post reads as not found.
func (r *MySQLPostRepository) GetByID(ctx context.Context, id int64, excludeInactive bool) (*model.Post, error) {
	query := `SELECT ` + postColumns + postFrom + ` WHERE p.id = ?`
	args := []any{id}
	if excludeInactive {
		query += ` AND p.estado <> ?`
		args = append(args, model.PostStatusInactive)
	}
	return scanPost(r.db.QueryRowContext(ctx, query, args...))
}

// List returns posts matching the filter, newest first.
func (r *MySQLPostRepository) List(ctx context.Context, filter model.PostFilter) ([]model.Post, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + postColumns + postFrom + where + ` ORDER BY p.created_at DESC, p.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter, ignoring pagination.
func (r *MySQLPostRepository) Count(ctx context.Context, filter model.PostFilter) (int64, error) {
	where, args := filterClause(filter)
	query := `SELECT COUNT(*)` + postFrom + where

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// Update persists the mutable fields of a post. The owner is immutable.
func (r *MySQLPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE publicaciones SET
		estado = ?, titulo = ?, descripcion = ?, raza = ?, lugar = ?, fecha = ?,
		sexo = ?, tamanio = ?, color = ?, detalles = ?, edad = ?, afinidad = ?,
		energia = ?, castrado = ?, whatsapp = ?, img = ?
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		post.Status, post.Title, post.Description, post.Breed, post.Place,
		post.Date, post.Sex, post.Size, post.Color, post.Details, post.Age,
		post.Affinity, post.Energy, post.Neutered, post.Whatsapp, post.Img,
		post.ID,
	)
	return err
}

// SetStatus moves a post to the given lifecycle status.
func (r *MySQLPostRepository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE publicaciones SET estado = ? WHERE id = ?`, status, id)
	return err
}
