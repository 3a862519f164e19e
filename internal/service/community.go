package service

import (
	"context"
	"errors"
	"strings"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var ErrArticleNotFound = errors.New("Publicación de comunidad no encontrada")

// CommunityService handles community articles. Creation and mutation are
// admin-only; reading is public.
type CommunityService struct {
	articles repository.CommunityRepository
}

// NewCommunityService creates a CommunityService.
func NewCommunityService(articles repository.CommunityRepository) *CommunityService {
	return &CommunityService{articles: articles}
}

func validateArticle(a *model.CommunityArticle) error {
	if a.Title == "" || runeLen(a.Title) > 80 {
		return validationErr("El título es obligatorio y no puede tener más de 80 caracteres")
	}
	if a.Content == "" || runeLen(a.Content) > 2000 {
		return validationErr("El contenido es obligatorio y no puede tener más de 2000 caracteres")
	}
	if !oneOf(a.Category, model.CommunityCategoryInfo, model.CommunityCategoryAdvice,
		model.CommunityCategoryStory, model.CommunityCategoryAlert) {
		return validationErr("La categoría debe ser INFORMACION, CONSEJO, HISTORIA o ALERTA")
	}
	return validateImg(a.Img)
}

// List returns all articles, newest first.
func (s *CommunityService) List(ctx context.Context) (model.CommunityListResponse, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return model.CommunityListResponse{}, err
	}

	resp := model.CommunityListResponse{Articles: make([]model.CommunityResponse, 0, len(articles))}
	for i := range articles {
		resp.Articles = append(resp.Articles, articles[i].ToResponse())
	}
	return resp, nil
}

// Get returns one article.
func (s *CommunityService) Get(ctx context.Context, id int64) (model.CommunityResponse, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return model.CommunityResponse{}, ErrArticleNotFound
		}
		return model.CommunityResponse{}, err
	}
	return article.ToResponse(), nil
}

// Create stores a new article authored by the actor; admin only.
func (s *CommunityService) Create(ctx context.Context, actor *model.User, req model.CommunityRequest) (model.CommunityResponse, error) {
	if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
		return model.CommunityResponse{}, err
	}

	article := &model.CommunityArticle{
		Title:     normalize(req.Title),
		Content:   req.Content,
		Category:  normalize(req.Category),
		Img:       strings.ToLower(req.Img),
		UserID:    actor.ID,
		OwnerName: actor.Name,
		OwnerImg:  actor.Img,
		OwnerRole: actor.Role,
	}

	if err := validateArticle(article); err != nil {
		return model.CommunityResponse{}, err
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return model.CommunityResponse{}, err
	}
	return article.ToResponse(), nil
}

// Update applies a partial edit to an article; admin only.
func (s *CommunityService) Update(ctx context.Context, actor *model.User, id int64, req model.UpdateCommunityRequest) (model.CommunityResponse, error) {
	if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
		return model.CommunityResponse{}, err
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return model.CommunityResponse{}, ErrArticleNotFound
		}
		return model.CommunityResponse{}, err
	}

	if req.Title != nil {
		article.Title = normalize(*req.Title)
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Category != nil {
		article.Category = normalize(*req.Category)
	}
	if req.Img != nil {
		article.Img = strings.ToLower(*req.Img)
	}

	if err := validateArticle(article); err != nil {
		return model.CommunityResponse{}, err
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return model.CommunityResponse{}, err
	}
	return article.ToResponse(), nil
}

// Delete removes an article permanently; admin only.
func (s *CommunityService) Delete(ctx context.Context, actor *model.User, id int64) error {
	if err := authz.Allow(actor, 0, authz.AdminOnly); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	return nil
}
