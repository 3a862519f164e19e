package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellitas/huellitas-api/internal/crypto"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

const testSecret = "test-secret"

// stubUsers serves a single user by ID; everything else is unused here.
type stubUsers struct {
	user *model.User
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsers) Create(context.Context, *model.User) error          { return nil }
func (s *stubUsers) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}
func (s *stubUsers) List(context.Context, int64, int64) ([]model.User, error) { return nil, nil }
func (s *stubUsers) CountActive(context.Context) (int64, error)               { return 0, nil }
func (s *stubUsers) Update(context.Context, *model.User) error                { return nil }
func (s *stubUsers) SetActive(context.Context, int64, bool) error             { return nil }
func (s *stubUsers) SetResetToken(context.Context, int64, string, time.Time) error {
	return nil
}
func (s *stubUsers) GetByResetToken(context.Context, string, time.Time) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}
func (s *stubUsers) ConsumeResetToken(context.Context, int64, string, string) error {
	return nil
}

func authedRequest(t *testing.T, userID int64) *http.Request {
	t.Helper()
	token, err := crypto.GenerateToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	return req
}

func TestAuth(t *testing.T) {
	user := &model.User{ID: 7, Role: model.RoleUser, Active: true}
	mw := Auth(testSecret, &stubUsers{user: user})

	var gotActor *model.User
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, 7))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotActor)
	assert.Equal(t, int64(7), gotActor.ID)
}

func TestAuthRejections(t *testing.T) {
	disabled := &model.User{ID: 7, Role: model.RoleUser, Active: false}

	tests := []struct {
		name  string
		users repository.UserRepository
		req   func(t *testing.T) *http.Request
	}{
		{"missing token", &stubUsers{}, func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodGet, "/", nil)
		}},
		{"garbage token", &stubUsers{}, func(t *testing.T) *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(TokenHeader, "no-es-un-jwt")
			return req
		}},
		{"wrong secret", &stubUsers{}, func(t *testing.T) *http.Request {
			token, err := crypto.GenerateToken(7, "otro-secreto", time.Hour)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(TokenHeader, token)
			return req
		}},
		{"deleted user", &stubUsers{}, func(t *testing.T) *http.Request {
			return authedRequest(t, 7)
		}},
		{"disabled user", &stubUsers{user: disabled}, func(t *testing.T) *http.Request {
			return authedRequest(t, 7)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(testSecret, tt.users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not run")
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req(t))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	admin := &model.User{ID: 1, Role: model.RoleAdmin, Active: true}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), actorKey, admin))
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	regular := &model.User{ID: 2, Role: model.RoleUser, Active: true}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), actorKey, regular))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
