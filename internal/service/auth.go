package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huellitas/huellitas-api/internal/crypto"
	"github.com/huellitas/huellitas-api/internal/mail"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("Usuario / Password no son correctos")
	ErrResetTokenInvalid  = errors.New("Token inválido o expirado")
)

// ForgotPasswordMessage is the response text for every forgot-password
// request, known email or not, so the endpoint does not reveal whether an
// account exists.
const ForgotPasswordMessage = "Si el correo existe, se envió un mensaje para restablecer la contraseña"

// AuthService handles login and the password-reset flow.
type AuthService struct {
	users        repository.UserRepository
	mailer       mail.Mailer
	jwtSecret    string
	jwtExpiry    time.Duration
	resetTTL     time.Duration
	mailTimeout  time.Duration
	resetURLBase string
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, mailer mail.Mailer, jwtSecret string, jwtExpiry, resetTTL, mailTimeout time.Duration, resetURLBase string) *AuthService {
	return &AuthService{
		users:        users,
		mailer:       mailer,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		resetTTL:     resetTTL,
		mailTimeout:  mailTimeout,
		resetURLBase: resetURLBase,
	}
}

// Login authenticates a user and returns a signed session token. Unknown
// emails, disabled accounts and wrong passwords all produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !user.Active {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// ForgotPassword issues a time-limited reset token and mails it to the
// user. Unknown emails are a silent no-op; callers always answer with the
// same generic message. A failed delivery is logged but does not fail the
// request: the token is already persisted.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if !emailRegex.MatchString(email) {
		return validationErr("Debe ser un correo válido")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}

	exp := time.Now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, exp); err != nil {
		return err
	}

	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	body := fmt.Sprintf("Para restablecer tu contraseña entrá a: %s/%s\nEl enlace vence en una hora.", s.resetURLBase, token)
	if err := s.mailer.Send(mailCtx, user.Email, "Recuperar contraseña", body); err != nil {
		slog.Warn("reset mail delivery failed", "user_id", user.ID, "error", err)
	}

	return nil
}

// ResetPassword redeems a reset token. The token is single-use: the update
// clears it with a guard, so a concurrent second redemption fails.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return ErrResetTokenInvalid
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.ConsumeResetToken(ctx, user.ID, token, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	return nil
}
