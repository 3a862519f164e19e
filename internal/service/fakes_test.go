package service

import (
	"context"
	"strings"
	"time"

	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo(seed ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
	for _, u := range seed {
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int64) ([]model.User, error) {
	var out []model.User
	var skipped int64
	for id := r.nextID - 1; id >= 1; id-- {
		u, ok := r.users[id]
		if !ok || !u.Active {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Active {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil
	}
	stored.Name = user.Name
	stored.PasswordHash = user.PasswordHash
	stored.Phone = user.Phone
	stored.Address = user.Address
	stored.Img = user.Img
	stored.Role = user.Role
	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	if u, ok := r.users[id]; ok {
		u.Active = active
	}
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, id int64, token string, exp time.Time) error {
	if u, ok := r.users[id]; ok {
		u.ResetToken = &token
		u.ResetTokenExp = &exp
	}
	return nil
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, token string, now time.Time) (*model.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExp != nil && u.ResetTokenExp.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ConsumeResetToken(_ context.Context, id int64, token, passwordHash string) error {
	u, ok := r.users[id]
	if !ok || u.ResetToken == nil || *u.ResetToken != token {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExp = nil
	return nil
}

// fakePostRepo is an in-memory PostRepository for service tests.
type fakePostRepo struct {
	posts      map[int64]*model.Post
	nextID     int64
	lastFilter model.PostFilter
}

func newFakePostRepo(seed ...*model.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[int64]*model.Post), nextID: 1}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		cp := *p
		r.posts[p.ID] = &cp
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64, excludeInactive bool) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	if excludeInactive && p.Status == model.PostStatusInactive {
		return nil, repository.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) matches(p *model.Post, filter model.PostFilter) bool {
	if filter.ExcludeStatus != "" && p.Status == filter.ExcludeStatus {
		return false
	}
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	if filter.Type != "" && p.Type != filter.Type {
		return false
	}
	if filter.UserID != 0 && p.UserID != filter.UserID {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(strings.Join([]string{
			p.Title, p.Description, p.Breed, p.Color, p.Details, p.Age, p.Place, p.Size,
		}, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (r *fakePostRepo) List(_ context.Context, filter model.PostFilter) ([]model.Post, error) {
	r.lastFilter = filter
	var out []model.Post
	var skipped int64
	for id := r.nextID - 1; id >= 1; id-- {
		p, ok := r.posts[id]
		if !ok || !r.matches(p, filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && int64(len(out)) >= filter.Limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePostRepo) Count(_ context.Context, filter model.PostFilter) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if r.matches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return repository.ErrPostNotFound
	}
	cp := *post
	cp.UserID = stored.UserID
	cp.CreatedAt = stored.CreatedAt
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) SetStatus(_ context.Context, id int64, status string) error {
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrPostNotFound
	}
	p.Status = status
	return nil
}

// fakeMailer records sent mail and can be told to fail.
type fakeMailer struct {
	sent []fakeMail
	err  error
}

type fakeMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, fakeMail{to: to, subject: subject, body: body})
	return nil
}
