package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellitas/huellitas-api/internal/model"
)

func TestSearchUnknownCollection(t *testing.T) {
	svc := NewSearchService(newFakePostRepo())

	var vErr *ValidationError
	_, err := svc.Search(context.Background(), "usuarios", "firulais", "")
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "publicaciones")
}

func TestSearchMatchesSubstring(t *testing.T) {
	posts := newFakePostRepo(
		seedLostPost(1, 7, model.PostStatusActive),
		seedLostPost(2, 7, model.PostStatusInactive),
	)
	svc := NewSearchService(posts)

	resp, err := svc.Search(context.Background(), "publicaciones", "firu", "")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	// reduced projection only
	r := resp.Results[0]
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, model.PostTypeLost, r.Type)
	assert.Equal(t, "SE PERDIÓ FIRULAIS", r.Title)

	// soft-deleted posts never match and the result set is capped
	assert.Equal(t, model.PostStatusInactive, posts.lastFilter.ExcludeStatus)
	assert.Equal(t, int64(searchLimit), posts.lastFilter.Limit)
}

func TestSearchFiltersByType(t *testing.T) {
	posts := newFakePostRepo(seedLostPost(1, 7, model.PostStatusActive))
	svc := NewSearchService(posts)

	resp, err := svc.Search(context.Background(), "publicaciones", "firu", "adopcion")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, model.PostTypeAdoption, posts.lastFilter.Type)
}

func TestSearchEmptyTermListsAll(t *testing.T) {
	posts := newFakePostRepo(
		seedLostPost(1, 7, model.PostStatusActive),
		seedLostPost(2, 8, model.PostStatusActive),
	)
	svc := NewSearchService(posts)

	resp, err := svc.Search(context.Background(), "publicaciones", "  ", "")
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
}
