package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/huellitas/huellitas-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence. Services depend on this
// interface; tests substitute fakes.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, offset, limit int64) ([]model.User, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *model.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetResetToken(ctx context.Context, id int64, token string, exp time.Time) error
	GetByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	ConsumeResetToken(ctx context.Context, id int64, token, passwordHash string) error
}

// MySQLUserRepository is the MySQL implementation of UserRepository.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a MySQL-backed user repository.
func NewUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const userColumns = `id, nombre, correo, password_hash, telefono, direccion, img, rol, estado, reset_token, reset_token_exp, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.Address, &user.Img, &user.Role, &user.Active,
		&user.ResetToken, &user.ResetTokenExp, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *MySQLUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (nombre, correo, password_hash, telefono, direccion, img, rol, estado)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Phone, user.Address, user.Img, user.Role, user.Active,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email address.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE correo = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// List returns a page of active users, newest first.
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int64) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE estado = TRUE ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// CountActive returns the number of active users.
func (r *MySQLUserRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE estado = TRUE`).Scan(&total)
	return total, err
}

// Update persists the mutable profile fields of a user.
func (r *MySQLUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET nombre = ?, password_hash = ?, telefono = ?, direccion = ?, img = ?, rol = ? WHERE id = ?`

	// Callers verify existence with GetByID first; a no-op update reports
	// zero affected rows on MySQL, so rows-affected is not checked here.
	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.PasswordHash, user.Phone, user.Address, user.Img, user.Role, user.ID,
	)
	return err
}

// SetActive flips the soft-delete flag of a user.
func (r *MySQLUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET estado = ? WHERE id = ?`, active, id)
	return err
}

// SetResetToken stores a pending password-reset token with its expiry.
func (r *MySQLUserRepository) SetResetToken(ctx context.Context, id int64, token string, exp time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_token_exp = ? WHERE id = ?`, token, exp, id)
	return err
}

// GetByResetToken retrieves the user holding an unexpired reset token.
func (r *MySQLUserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = ? AND reset_token_exp > ?`
	return scanUser(r.db.QueryRowContext(ctx, query, token, now))
}

// ConsumeResetToken overwrites the password and clears the token in one
// guarded statement; the token guard makes a second concurrent redemption
// miss the row and fail.
func (r *MySQLUserRepository) ConsumeResetToken(ctx context.Context, id int64, token, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_exp = NULL
	          WHERE id = ? AND reset_token = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id, token)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
