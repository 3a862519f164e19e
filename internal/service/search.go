package service

import (
	"context"
	"strings"

	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

// searchableCollections is the allow-list of collections the search
// endpoint accepts.
var searchableCollections = []string{"publicaciones"}

// searchLimit caps autocomplete result sets.
const searchLimit = 10

// SearchService answers the cross-collection search/autocomplete endpoint.
type SearchService struct {
	posts repository.PostRepository
}

// NewSearchService creates a SearchService.
func NewSearchService(posts repository.PostRepository) *SearchService {
	return &SearchService{posts: posts}
}

// Search runs a case-insensitive substring match over the given collection.
// Unknown collections are a validation error; soft-deleted posts never
// appear; results carry a reduced projection and are capped.
func (s *SearchService) Search(ctx context.Context, collection, term, postType string) (model.SearchResponse, error) {
	if !oneOf(collection, searchableCollections...) {
		return model.SearchResponse{}, validationErr(
			"Las colecciones permitidas son: %s", strings.Join(searchableCollections, ", "))
	}

	filter := model.PostFilter{
		ExcludeStatus: model.PostStatusInactive,
		Search:        strings.TrimSpace(term),
		Type:          normalize(postType),
		Limit:         searchLimit,
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return model.SearchResponse{}, err
	}

	resp := model.SearchResponse{Results: make([]model.SearchResult, 0, len(posts))}
	for i := range posts {
		p := &posts[i]
		resp.Results = append(resp.Results, model.SearchResult{
			ID:    p.ID,
			Type:  p.Type,
			Title: p.Title,
			Breed: p.Breed,
			Place: p.Place,
			Img:   p.Img,
		})
	}
	return resp, nil
}
