package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huellitas/huellitas-api/internal/model"
)

var ErrHelpCaseNotFound = errors.New("help case not found")

// HelpCaseRepository handles help post persistence.
type HelpCaseRepository interface {
	Create(ctx context.Context, helpCase *model.HelpCase) error
	GetByID(ctx context.Context, id int64) (*model.HelpCase, error)
	List(ctx context.Context) ([]model.HelpCase, error)
	ListByUser(ctx context.Context, userID int64) ([]model.HelpCase, error)
	Delete(ctx context.Context, id int64) error
}

// MySQLHelpCaseRepository is the MySQL implementation of HelpCaseRepository.
type MySQLHelpCaseRepository struct {
	db *sql.DB
}

// NewHelpCaseRepository creates a MySQL-backed help case repository.
func NewHelpCaseRepository(db *sql.DB) *MySQLHelpCaseRepository {
	return &MySQLHelpCaseRepository{db: db}
}

const helpCaseColumns = `h.id, h.titulo, h.contenido, h.categoria, h.user_id, u.nombre, u.img, u.rol, h.created_at`
const helpCaseFrom = ` FROM casos_ayuda h JOIN users u ON u.id = h.user_id`

func scanHelpCase(row interface{ Scan(...any) error }) (*model.HelpCase, error) {
	h := &model.HelpCase{}
	err := row.Scan(
		&h.ID, &h.Title, &h.Content, &h.Category,
		&h.UserID, &h.OwnerName, &h.OwnerImg, &h.OwnerRole, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHelpCaseNotFound
		}
		return nil, err
	}
	return h, nil
}

// Create inserts a new help case and sets the generated ID.
func (r *MySQLHelpCaseRepository) Create(ctx context.Context, helpCase *model.HelpCase) error {
	query := `INSERT INTO casos_ayuda (titulo, contenido, categoria, user_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		helpCase.Title, helpCase.Content, helpCase.Category, helpCase.UserID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	helpCase.ID = id
	return nil
}

// GetByID retrieves a help case with its owner display fields.
func (r *MySQLHelpCaseRepository) GetByID(ctx context.Context, id int64) (*model.HelpCase, error) {
	query := `SELECT ` + helpCaseColumns + helpCaseFrom + ` WHERE h.id = ?`
	return scanHelpCase(r.db.QueryRowContext(ctx, query, id))
}

// List returns all help cases, newest first.
func (r *MySQLHelpCaseRepository) List(ctx context.Context) ([]model.HelpCase, error) {
	query := `SELECT ` + helpCaseColumns + helpCaseFrom + ` ORDER BY h.created_at DESC, h.id DESC`
	return r.queryHelpCases(ctx, query)
}

// ListByUser returns the help cases of one user, newest first.
func (r *MySQLHelpCaseRepository) ListByUser(ctx context.Context, userID int64) ([]model.HelpCase, error) {
	query := `SELECT ` + helpCaseColumns + helpCaseFrom + ` WHERE h.user_id = ? ORDER BY h.created_at DESC, h.id DESC`
	return r.queryHelpCases(ctx, query, userID)
}

func (r *MySQLHelpCaseRepository) queryHelpCases(ctx context.Context, query string, args ...any) ([]model.HelpCase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []model.HelpCase
	for rows.Next() {
		h, err := scanHelpCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *h)
	}
	return cases, rows.Err()
}

// Delete removes a help case permanently.
func (r *MySQLHelpCaseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM casos_ayuda WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHelpCaseNotFound
	}
	return nil
}
