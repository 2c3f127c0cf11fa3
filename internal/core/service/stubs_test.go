package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// In-memory collaborators shared by the service tests. The review stub
// mirrors the storage contract: the uniqueness check and the insert happen
// under one lock, like the compound index does in Mongo.

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) GetOrCreate(_ context.Context, username, email string) (*domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[username]; ok {
		if u.Email != email {
			return nil, false, domain.ErrUserExists
		}
		return r.clone(u), false, nil
	}
	for _, u := range r.users {
		if u.Email == email {
			return nil, false, domain.ErrUserExists
		}
	}

	r.nextID++
	u := &domain.User{
		ID:       fmt.Sprintf("u%d", r.nextID),
		Username: username,
		Email:    email,
		Role:     domain.RoleUser,
	}
	r.users[username] = u
	return r.clone(u), true, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		return r.clone(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return r.clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := r.clone(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[c.Username] = c
	return r.clone(c), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.Username] = r.clone(user)
	return r.clone(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, search string, _, _ int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if search == "" || strings.Contains(u.Username, search) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) MarkExchanged(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Active = true
			u.CodeEpoch++
			return r.clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubMailer struct {
	mu    sync.Mutex
	sent  []string // recipient addresses, in order
	fail  error
	last  string // last body
}

func (m *stubMailer) Send(_ context.Context, recipient, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, recipient)
	m.last = body
	return nil
}

type stubTitleRepo struct {
	titles map[string]*domain.Title
}

func newStubTitleRepo(ids ...string) *stubTitleRepo {
	r := &stubTitleRepo{titles: make(map[string]*domain.Title)}
	for _, id := range ids {
		r.titles[id] = &domain.Title{ID: id, Name: "title " + id, Year: 2000}
	}
	return r
}

func (r *stubTitleRepo) List(_ context.Context, _ ports.TitleFilter, _, _ int) ([]domain.Title, int64, error) {
	var out []domain.Title
	for _, t := range r.titles {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTitleRepo) FindByID(_ context.Context, id string) (*domain.Title, error) {
	if t, ok := r.titles[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, domain.ErrTitleNotFound
}

func (r *stubTitleRepo) Create(_ context.Context, t *domain.Title) (*domain.Title, error) {
	c := *t
	c.ID = fmt.Sprintf("t%d", len(r.titles)+1)
	r.titles[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTitleRepo) Update(_ context.Context, t *domain.Title) (*domain.Title, error) {
	if _, ok := r.titles[t.ID]; !ok {
		return nil, domain.ErrTitleNotFound
	}
	c := *t
	r.titles[t.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTitleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.titles[id]; !ok {
		return domain.ErrTitleNotFound
	}
	delete(r.titles, id)
	return nil
}

type stubReviewRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Review
	byPair  map[string]string // titleID|authorID -> review id
	nextID  int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[string]*domain.Review), byPair: make(map[string]string)}
}

func (r *stubReviewRepo) pairKey(titleID, authorID string) string {
	return titleID + "|" + authorID
}

func (r *stubReviewRepo) Insert(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.pairKey(review.TitleID, review.AuthorID)
	if _, ok := r.byPair[key]; ok {
		return nil, domain.ErrDuplicateReview
	}
	r.nextID++
	c := *review
	c.ID = fmt.Sprintf("r%d", r.nextID)
	r.byID[c.ID] = &c
	r.byPair[key] = c.ID
	out := c
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, titleID, reviewID string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv, ok := r.byID[reviewID]; ok && rv.TitleID == titleID {
		c := *rv
		return &c, nil
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) ListByTitle(_ context.Context, titleID string, _, _ int) ([]domain.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, rv := range r.byID {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubReviewRepo) Update(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[review.ID]; !ok {
		return nil, domain.ErrReviewNotFound
	}
	c := *review
	r.byID[review.ID] = &c
	out := c
	return &out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, titleID, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.byID[reviewID]
	if !ok || rv.TitleID != titleID {
		return domain.ErrReviewNotFound
	}
	delete(r.byPair, r.pairKey(rv.TitleID, rv.AuthorID))
	delete(r.byID, reviewID)
	return nil
}

func (r *stubReviewRepo) AverageScore(_ context.Context, titleID string) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for _, rv := range r.byID {
		if rv.TitleID == titleID {
			sum += int64(rv.Score)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type stubCommentRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Comment
	nextID int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Insert(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *c
	cp.ID = fmt.Sprintf("c%d", r.nextID)
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, reviewID, commentID string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[commentID]; ok && c.ReviewID == reviewID {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) ListByReview(_ context.Context, reviewID string, _, _ int) ([]domain.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, c := range r.byID {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, reviewID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[commentID]
	if !ok || c.ReviewID != reviewID {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, commentID)
	return nil
}

type stubRatingCache struct {
	mu      sync.Mutex
	entries map[string]*int
	sets    int
}

func newStubRatingCache() *stubRatingCache {
	return &stubRatingCache{entries: make(map[string]*int)}
}

func (c *stubRatingCache) Get(_ context.Context, titleID string) (*int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[titleID]
	return v, ok, nil
}

func (c *stubRatingCache) Set(_ context.Context, titleID string, rating *int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[titleID] = rating
	c.sets++
	return nil
}

func (c *stubRatingCache) Invalidate(_ context.Context, titleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, titleID)
	return nil
}
