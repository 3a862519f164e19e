package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huellitas/huellitas-api/internal/model"
)

var ErrStoryNotFound = errors.New("success story not found")

// StoryRepository handles success story persistence.
type StoryRepository interface {
	Create(ctx context.Context, story *model.SuccessStory) error
	GetByID(ctx context.Context, id int64) (*model.SuccessStory, error)
	List(ctx context.Context) ([]model.SuccessStory, error)
	Delete(ctx context.Context, id int64) error
}

// MySQLStoryRepository is the MySQL implementation of StoryRepository.
type MySQLStoryRepository struct {
	db *sql.DB
}

// NewStoryRepository creates a MySQL-backed story repository.
func NewStoryRepository(db *sql.DB) *MySQLStoryRepository {
	return &MySQLStoryRepository{db: db}
}

const storyColumns = `s.id, s.titulo, s.descripcion, s.img, s.user_id, u.nombre, u.img, u.rol, s.created_at`
const storyFrom = ` FROM casos_exito s JOIN users u ON u.id = s.user_id`

func scanStory(row interface{ Scan(...any) error }) (*model.SuccessStory, error) {
	s := &model.SuccessStory{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Img,
		&s.UserID, &s.OwnerName, &s.OwnerImg, &s.OwnerRole, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create inserts a new story and sets the generated ID.
func (r *MySQLStoryRepository) Create(ctx context.Context, story *model.SuccessStory) error {
	query := `INSERT INTO casos_exito (titulo, descripcion, img, user_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		story.Title, story.Description, story.Img, story.UserID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	story.ID = id
	return nil
}

// GetByID retrieves a story with its owner display fields.
func (r *MySQLStoryRepository) GetByID(ctx context.Context, id int64) (*model.SuccessStory, error) {
	query := `SELECT ` + storyColumns + storyFrom + ` WHERE s.id = ?`
	return scanStory(r.db.QueryRowContext(ctx, query, id))
}

// List returns all stories, newest first.
func (r *MySQLStoryRepository) List(ctx context.Context) ([]model.SuccessStory, error) {
	query := `SELECT ` + storyColumns + storyFrom + ` ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []model.SuccessStory
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *s)
	}
	return stories, rows.Err()
}

// Delete removes a story permanently.
func (r *MySQLStoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM casos_exito WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStoryNotFound
	}
	return nil
}
