package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/crypto"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("El correo ya está registrado")
	ErrUserNotFound = errors.New("Usuario no encontrado")
)

const defaultUserPageSize = 5

// UserService handles account business logic.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func validateRegistration(req model.CreateUserRequest) error {
	name := req.Name
	if n := runeLen(name); n < 3 || n > 15 {
		return validationErr("El nombre debe tener entre 3 y 15 caracteres")
	}
	if !lettersRegex.MatchString(name) {
		return validationErr("El nombre solo puede contener letras y espacios")
	}
	if !emailRegex.MatchString(req.Email) {
		return validationErr("Debe ser un correo válido")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if !phoneRegex.MatchString(req.Phone) {
		return validationErr("El teléfono debe contener entre 7 y 15 dígitos numéricos")
	}
	if runeLen(req.Address) > 30 {
		return validationErr("La dirección no puede superar los 30 caracteres")
	}
	if req.Role != "" && !oneOf(req.Role, model.RoleAdmin, model.RoleUser) {
		return validationErr("El rol no es válido")
	}
	return nil
}

// Register creates a new account. The stored password is a salted hash,
// never the plaintext.
func (s *UserService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if err := validateRegistration(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		Img:          req.Img,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

// List returns a page of active users; admin only. The count and the page
// are independent queries and run in parallel.
func (s *UserService) List(ctx context.Context, actor *model.User, offset, limit int64) (model.UserListResponse, error) {
	if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
		return model.UserListResponse{}, err
	}

	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var (
		total int64
		users []model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.users.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx, offset, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.UserListResponse{}, err
	}

	resp := model.UserListResponse{Total: total, Users: make([]model.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, users[i].ToResponse())
	}
	return resp, nil
}

// Get returns one user; the actor must be that user or an admin.
func (s *UserService) Get(ctx context.Context, actor *model.User, id int64) (model.UserResponse, error) {
	if err := authz.Allow(actor, id, authz.SelfOrAdmin); err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.ToResponse(), nil
}

// Update modifies a user profile; the actor must be that user or an admin.
// Only admins may change roles. The email is immutable.
func (s *UserService) Update(ctx context.Context, actor *model.User, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	if err := authz.Allow(actor, id, authz.SelfOrAdmin); err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Name != nil {
		if n := runeLen(*req.Name); n < 3 || n > 15 || !lettersRegex.MatchString(*req.Name) {
			return model.UserResponse{}, validationErr("El nombre no es válido")
		}
		user.Name = *req.Name
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return model.UserResponse{}, err
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}
	if req.Phone != nil {
		if !phoneRegex.MatchString(*req.Phone) {
			return model.UserResponse{}, validationErr("El teléfono debe contener entre 7 y 15 dígitos numéricos")
		}
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		if runeLen(*req.Address) > 30 {
			return model.UserResponse{}, validationErr("La dirección no puede superar los 30 caracteres")
		}
		user.Address = *req.Address
	}
	if req.Img != nil {
		user.Img = *req.Img
	}
	if req.Role != nil {
		if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
			return model.UserResponse{}, err
		}
		if !oneOf(*req.Role, model.RoleAdmin, model.RoleUser) {
			return model.UserResponse{}, validationErr("El rol no es válido")
		}
		user.Role = *req.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return model.UserResponse{}, err
	}
	return user.ToResponse(), nil
}

// Delete disables an account (soft delete); admin only.
func (s *UserService) Delete(ctx context.Context, actor *model.User, id int64) (model.UserResponse, error) {
	if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if err := s.users.SetActive(ctx, id, false); err != nil {
		return model.UserResponse{}, err
	}

	user.Active = false
	return user.ToResponse(), nil
}
