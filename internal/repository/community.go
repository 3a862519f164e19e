package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huellitas/huellitas-api/internal/model"
)

var ErrArticleNotFound = errors.New("community article not found")

// CommunityRepository handles community article persistence.
type CommunityRepository interface {
	Create(ctx context.Context, article *model.CommunityArticle) error
	GetByID(ctx context.Context, id int64) (*model.CommunityArticle, error)
	List(ctx context.Context) ([]model.CommunityArticle, error)
	Update(ctx context.Context, article *model.CommunityArticle) error
	Delete(ctx context.Context, id int64) error
}

// MySQLCommunityRepository is the MySQL implementation of CommunityRepository.
type MySQLCommunityRepository struct {
	db *sql.DB
}

// NewCommunityRepository creates a MySQL-backed community repository.
func NewCommunityRepository(db *sql.DB) *MySQLCommunityRepository {
	return &MySQLCommunityRepository{db: db}
}

const communityColumns = `c.id, c.titulo, c.contenido, c.categoria, c.img, c.user_id, u.nombre, u.img, u.rol, c.created_at`
const communityFrom = ` FROM comunidad c JOIN users u ON u.id = c.user_id`

func scanArticle(row interface{ Scan(...any) error }) (*model.CommunityArticle, error) {
	a := &model.CommunityArticle{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Category, &a.Img,
		&a.UserID, &a.OwnerName, &a.OwnerImg, &a.OwnerRole, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts a new article and sets the generated ID.
func (r *MySQLCommunityRepository) Create(ctx context.Context, article *model.CommunityArticle) error {
	query := `INSERT INTO comunidad (titulo, contenido, categoria, img, user_id) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Category, article.Img, article.UserID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	article.ID = id
	return nil
}

// GetByID retrieves an article with its owner display fields.
func (r *MySQLCommunityRepository) GetByID(ctx context.Context, id int64) (*model.CommunityArticle, error) {
	query := `SELECT ` + communityColumns + communityFrom + ` WHERE c.id = ?`
	return scanArticle(r.db.QueryRowContext(ctx, query, id))
}

// List returns all articles, newest first.
func (r *MySQLCommunityRepository) List(ctx context.Context) ([]model.CommunityArticle, error) {
	query := `SELECT ` + communityColumns + communityFrom + ` ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.CommunityArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// Update persists the mutable fields of an article.
func (r *MySQLCommunityRepository) Update(ctx context.Context, article *model.CommunityArticle) error {
	query := `UPDATE comunidad SET titulo = ?, contenido = ?, categoria = ?, img = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Category, article.Img, article.ID)
	return err
}

// Delete removes an article permanently.
func (r *MySQLCommunityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comunidad WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrArticleNotFound
	}
	return nil
}
