package service

import (
	"context"
	"errors"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var ErrStoryNotFound = errors.New("Caso no encontrado")

// StoryService handles success stories: public listing, authenticated
// creation, owner-or-admin hard delete.
type StoryService struct {
	stories repository.StoryRepository
}

// NewStoryService creates a StoryService.
func NewStoryService(stories repository.StoryRepository) *StoryService {
	return &StoryService{stories: stories}
}

// List returns all stories, newest first.
func (s *StoryService) List(ctx context.Context) (model.StoryListResponse, error) {
	stories, err := s.stories.List(ctx)
	if err != nil {
		return model.StoryListResponse{}, err
	}

	resp := model.StoryListResponse{
		Total:   int64(len(stories)),
		Stories: make([]model.StoryResponse, 0, len(stories)),
	}
	for i := range stories {
		resp.Stories = append(resp.Stories, stories[i].ToResponse())
	}
	return resp, nil
}

// Create stores a new story owned by the actor.
func (s *StoryService) Create(ctx context.Context, actor *model.User, req model.StoryRequest) (model.StoryResponse, error) {
	story := &model.SuccessStory{
		Title:       req.Title,
		Description: req.Description,
		Img:         req.Img,
		UserID:      actor.ID,
		OwnerName:   actor.Name,
		OwnerImg:    actor.Img,
		OwnerRole:   actor.Role,
	}

	if story.Title == "" || runeLen(story.Title) > 80 {
		return model.StoryResponse{}, validationErr("El título es obligatorio y no puede tener más de 80 caracteres")
	}
	if story.Description == "" || runeLen(story.Description) > 500 {
		return model.StoryResponse{}, validationErr("La descripción es obligatoria y no puede tener más de 500 caracteres")
	}
	if err := validateImg(story.Img); err != nil {
		return model.StoryResponse{}, err
	}

	if err := s.stories.Create(ctx, story); err != nil {
		return model.StoryResponse{}, err
	}
	return story.ToResponse(), nil
}

// Delete removes a story permanently; only the creator or an admin may.
func (s *StoryService) Delete(ctx context.Context, actor *model.User, id int64) error {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	if err := authz.Allow(actor, story.UserID, authz.SelfOrAdmin); err != nil {
		return err
	}

	return s.stories.Delete(ctx, id)
}
