package service

import (
	"context"
	"errors"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var ErrHelpCaseNotFound = errors.New("Caso no encontrado")

// HelpCaseService handles community help posts.
type HelpCaseService struct {
	cases repository.HelpCaseRepository
}

// NewHelpCaseService creates a HelpCaseService.
func NewHelpCaseService(cases repository.HelpCaseRepository) *HelpCaseService {
	return &HelpCaseService{cases: cases}
}

func helpCasesToResponse(cases []model.HelpCase) model.HelpCaseListResponse {
	resp := model.HelpCaseListResponse{
		Total: int64(len(cases)),
		Cases: make([]model.HelpCaseResponse, 0, len(cases)),
	}
	for i := range cases {
		resp.Cases = append(resp.Cases, cases[i].ToResponse())
	}
	return resp
}

// List returns all help cases, newest first.
func (s *HelpCaseService) List(ctx context.Context) (model.HelpCaseListResponse, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return model.HelpCaseListResponse{}, err
	}
	return helpCasesToResponse(cases), nil
}

// ListByUser returns the help cases of one user.
func (s *HelpCaseService) ListByUser(ctx context.Context, userID int64) (model.HelpCaseListResponse, error) {
	cases, err := s.cases.ListByUser(ctx, userID)
	if err != nil {
		return model.HelpCaseListResponse{}, err
	}
	return helpCasesToResponse(cases), nil
}

// Create stores a new help case owned by the actor. An empty category
// defaults to OTRO.
func (s *HelpCaseService) Create(ctx context.Context, actor *model.User, req model.HelpCaseRequest) (model.HelpCaseResponse, error) {
	helpCase := &model.HelpCase{
		Title:     req.Title,
		Content:   req.Content,
		Category:  normalize(req.Category),
		UserID:    actor.ID,
		OwnerName: actor.Name,
		OwnerImg:  actor.Img,
		OwnerRole: actor.Role,
	}
	if helpCase.Category == "" {
		helpCase.Category = model.HelpCategoryOther
	}

	if helpCase.Title == "" || runeLen(helpCase.Title) > 80 {
		return model.HelpCaseResponse{}, validationErr("El título es obligatorio y no puede tener más de 80 caracteres")
	}
	if helpCase.Content == "" || runeLen(helpCase.Content) > 2000 {
		return model.HelpCaseResponse{}, validationErr("El contenido es obligatorio y no puede tener más de 2000 caracteres")
	}
	if !oneOf(helpCase.Category, model.HelpCategoryAdvice, model.HelpCategoryQuestion,
		model.HelpCategoryExperience, model.HelpCategoryOther) {
		return model.HelpCaseResponse{}, validationErr("La categoría debe ser CONSEJO, PREGUNTA, EXPERIENCIA u OTRO")
	}

	if err := s.cases.Create(ctx, helpCase); err != nil {
		return model.HelpCaseResponse{}, err
	}
	return helpCase.ToResponse(), nil
}

// Delete removes a help case permanently; only the author or an admin may.
func (s *HelpCaseService) Delete(ctx context.Context, actor *model.User, id int64) error {
	helpCase, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHelpCaseNotFound) {
			return ErrHelpCaseNotFound
		}
		return err
	}

	if err := authz.Allow(actor, helpCase.UserID, authz.SelfOrAdmin); err != nil {
		return err
	}

	return s.cases.Delete(ctx, id)
}
