package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

var ErrPostNotFound = errors.New("Publicación no encontrada")

const defaultPostPageSize = 10

// PostService handles pet-ad business logic: validation, normalization,
// the lifecycle-status policy and owner checks.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService creates a PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// ListPostsParams are the public listing filters as they arrive from the
// query string.
type ListPostsParams struct {
	Type   string
	Status string
	Search string
	Offset int64
	Limit  int64
}

func postTypeValid(t string) bool {
	return oneOf(t, model.PostTypeLost, model.PostTypeFound, model.PostTypeAdoption)
}

func postStatusValid(s string) bool {
	return oneOf(s, model.PostStatusActive, model.PostStatusFound, model.PostStatusSeen,
		model.PostStatusAdopted, model.PostStatusInactive)
}

// normalizePostRequest uppercases the free-text fields in place; whatsapp,
// img and fecha keep their original form.
func normalizePostRequest(req *model.PostRequest) {
	req.Type = normalize(req.Type)
	req.Title = normalize(req.Title)
	req.Description = normalize(req.Description)
	req.Breed = normalize(req.Breed)
	req.Place = normalize(req.Place)
	req.Sex = normalize(req.Sex)
	req.Size = normalize(req.Size)
	req.Color = normalize(req.Color)
	req.Details = normalize(req.Details)
	req.Age = normalize(req.Age)
	req.Affinity = normalize(req.Affinity)
	req.Energy = normalize(req.Energy)
}

// validatePost checks a fully-populated post against the domain rules,
// including the per-type conditional requirements.
func validatePost(p *model.Post) error {
	if !postTypeValid(p.Type) {
		return validationErr("El tipo debe ser PERDIDO, ENCONTRADO o ADOPCION")
	}
	if !postStatusValid(p.Status) {
		return validationErr("El estado no es válido")
	}
	if p.Title == "" || runeLen(p.Title) > 80 {
		return validationErr("El título es obligatorio y no puede tener más de 80 caracteres")
	}
	if p.Description == "" || runeLen(p.Description) > 500 {
		return validationErr("La descripción es obligatoria y no puede tener más de 500 caracteres")
	}
	if p.Breed == "" || runeLen(p.Breed) > 40 || !lettersRegex.MatchString(p.Breed) {
		return validationErr("La raza es obligatoria y solo puede contener letras y espacios")
	}
	if !oneOf(p.Sex, "MACHO", "HEMBRA") {
		return validationErr("El sexo debe ser MACHO o HEMBRA")
	}
	if !oneOf(p.Size, "MINI", "PEQUEÑO", "MEDIANO", "GRANDE") {
		return validationErr("El tamaño debe ser MINI, PEQUEÑO, MEDIANO o GRANDE")
	}
	if p.Color == "" || runeLen(p.Color) > 50 || !colorRegex.MatchString(p.Color) {
		return validationErr("El color es obligatorio y contiene caracteres no válidos")
	}
	if runeLen(p.Details) > 250 {
		return validationErr("Los detalles no pueden tener más de 250 caracteres")
	}
	if !oneOf(p.Age, "CACHORRO", "ADULTO", "MAYOR") {
		return validationErr("La edad debe ser CACHORRO, ADULTO o MAYOR")
	}
	if !whatsappRegex.MatchString(p.Whatsapp) {
		return validationErr("El formato de WhatsApp no es válido")
	}
	if err := validateImg(p.Img); err != nil {
		return err
	}

	// Location and date only exist for lost/found ads; adoption profile
	// fields only for adoption ads.
	switch p.Type {
	case model.PostTypeLost, model.PostTypeFound:
		if p.Place == "" || runeLen(p.Place) > 80 {
			return validationErr("El lugar es obligatorio para publicaciones de tipo %s", p.Type)
		}
		if p.Date == "" {
			return validationErr("La fecha es obligatoria para publicaciones de tipo %s", p.Type)
		}
	case model.PostTypeAdoption:
		if !oneOf(p.Affinity, "ALTA", "MEDIA", "BAJA") {
			return validationErr("La afinidad es obligatoria para publicaciones de adopción")
		}
		if !oneOf(p.Energy, "ALTA", "MEDIA", "BAJA") {
			return validationErr("La energía es obligatoria para publicaciones de adopción")
		}
		if p.Neutered == nil {
			return validationErr("El campo castrado es obligatorio para publicaciones de adopción")
		}
	}

	return nil
}

// Create validates and stores a new post owned by the actor. The status
// always starts as ACTIVO regardless of what the client sends.
func (s *PostService) Create(ctx context.Context, actor *model.User, req model.PostRequest) (model.PostResponse, error) {
	normalizePostRequest(&req)

	post := &model.Post{
		Type:        req.Type,
		Status:      model.PostStatusActive,
		Title:       req.Title,
		Description: req.Description,
		Breed:       req.Breed,
		Place:       req.Place,
		Date:        req.Date,
		Sex:         req.Sex,
		Size:        req.Size,
		Color:       req.Color,
		Details:     req.Details,
		Age:         req.Age,
		Affinity:    req.Affinity,
		Energy:      req.Energy,
		Neutered:    req.Neutered,
		Whatsapp:    req.Whatsapp,
		Img:         req.Img,
		UserID:      actor.ID,
		OwnerName:   actor.Name,
	}

	if err := validatePost(post); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.PostResponse{}, err
	}

	return post.ToResponse(), nil
}

// List returns the public post listing. INACTIVO posts are always excluded;
// asking for them via the estado filter is ignored. Count and page run in
// parallel.
func (s *PostService) List(ctx context.Context, params ListPostsParams) (model.PostListResponse, error) {
	filter := model.PostFilter{
		ExcludeStatus: model.PostStatusInactive,
		Search:        params.Search,
		Offset:        params.Offset,
		Limit:         params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPostPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if t := normalize(params.Type); t != "" {
		filter.Type = t
	}
	if st := normalize(params.Status); st != "" && st != model.PostStatusInactive {
		filter.Status = st
	}

	return s.list(ctx, filter)
}

// AdminList returns posts of every status, optionally filtered; callers
// must have enforced the admin role already.
func (s *PostService) AdminList(ctx context.Context, status string, offset, limit int64) (model.PostListResponse, error) {
	filter := model.PostFilter{
		Status: normalize(status),
		Offset: offset,
		Limit:  limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPostPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.list(ctx, filter)
}

func (s *PostService) list(ctx context.Context, filter model.PostFilter) (model.PostListResponse, error) {
	var (
		total int64
		posts []model.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.posts.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.posts.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PostListResponse{}, err
	}

	resp := model.PostListResponse{Total: total, Posts: make([]model.PostResponse, 0, len(posts))}
	for i := range posts {
		resp.Posts = append(resp.Posts, posts[i].ToResponse())
	}
	return resp, nil
}

// ListByUser returns every post of a user including INACTIVO ones, for the
// owner dashboard; the actor must be that user or an admin.
func (s *PostService) ListByUser(ctx context.Context, actor *model.User, userID int64) (model.PostListResponse, error) {
	if err := authz.Allow(actor, userID, authz.SelfOrAdmin); err != nil {
		return model.PostListResponse{}, err
	}

	return s.list(ctx, model.PostFilter{UserID: userID})
}

// Get returns one public post; soft-deleted posts read as not found.
func (s *PostService) Get(ctx context.Context, id int64) (model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}
	return post.ToResponse(), nil
}

// Contact returns the owner contact projection of a public post.
func (s *PostService) Contact(ctx context.Context, id int64) (model.ContactResponse, error) {
	post, err := s.posts.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.ContactResponse{}, ErrPostNotFound
		}
		return model.ContactResponse{}, err
	}

	return model.ContactResponse{
		Name:     post.OwnerName,
		Phone:    post.OwnerPhone,
		Email:    post.OwnerEmail,
		Whatsapp: post.Whatsapp,
	}, nil
}

// Update applies a partial edit; only the owner or an admin may edit, and a
// denied attempt leaves the stored post unchanged.
func (s *PostService) Update(ctx context.Context, actor *model.User, id int64, req model.UpdatePostRequest) (model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if err := authz.Allow(actor, post.UserID, authz.SelfOrAdmin); err != nil {
		return model.PostResponse{}, err
	}

	applyString := func(dst *string, src *string, norm bool) {
		if src == nil {
			return
		}
		if norm {
			*dst = normalize(*src)
		} else {
			*dst = *src
		}
	}

	applyString(&post.Status, req.Status, true)
	applyString(&post.Title, req.Title, true)
	applyString(&post.Description, req.Description, true)
	applyString(&post.Breed, req.Breed, true)
	applyString(&post.Place, req.Place, true)
	applyString(&post.Date, req.Date, false)
	applyString(&post.Sex, req.Sex, true)
	applyString(&post.Size, req.Size, true)
	applyString(&post.Color, req.Color, true)
	applyString(&post.Details, req.Details, true)
	applyString(&post.Age, req.Age, true)
	applyString(&post.Affinity, req.Affinity, true)
	applyString(&post.Energy, req.Energy, true)
	applyString(&post.Whatsapp, req.Whatsapp, false)
	applyString(&post.Img, req.Img, false)
	if req.Neutered != nil {
		post.Neutered = req.Neutered
	}

	if err := validatePost(post); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return model.PostResponse{}, err
	}
	return post.ToResponse(), nil
}

// Delete soft-deletes a post by moving it to INACTIVO; only the owner or an
// admin may delete.
func (s *PostService) Delete(ctx context.Context, actor *model.User, id int64) (model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if err := authz.Allow(actor, post.UserID, authz.SelfOrAdmin); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.posts.SetStatus(ctx, id, model.PostStatusInactive); err != nil {
		return model.PostResponse{}, err
	}

	post.Status = model.PostStatusInactive
	return post.ToResponse(), nil
}

// Restore moves a soft-deleted post back to ACTIVO; callers must have
// enforced the admin role already.
func (s *PostService) Restore(ctx context.Context, id int64) (model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if post.Status != model.PostStatusInactive {
		return model.PostResponse{}, validationErr("La publicación no está inactiva")
	}

	if err := s.posts.SetStatus(ctx, id, model.PostStatusActive); err != nil {
		return model.PostResponse{}, err
	}

	post.Status = model.PostStatusActive
	return post.ToResponse(), nil
}
