// Package memrepo provides in-memory implementations of the repository interfaces. They honor
// the same not-found and unique-constraint contract as the Postgres repositories and back tests
// that must run without a database.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

var (
	_ repository.UserRepository        = (*Users)(nil)
	_ repository.CommunityRepository   = (*Communities)(nil)
	_ repository.PostRepository        = (*Posts)(nil)
	_ repository.LikeRepository        = (*Likes)(nil)
	_ repository.TransactionRepository = (*Transactions)(nil)
	_ repository.StoreRepository       = (*Stores)(nil)
	_ repository.ThemeRepository       = (*Themes)(nil)
)

// clock hands out strictly increasing timestamps so newest-first ordering is deterministic.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		c.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

var timestamps = &clock{}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// Users stores accounts.
type Users struct {
	mu   sync.Mutex
	byID map[string]domain.User
}

// NewUsers returns an empty store.
func NewUsers() *Users { return &Users{byID: map[string]domain.User{}} }

func (m *Users) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		switch {
		case u.Username == user.Username:
			return &repository.UniqueViolation{Constraint: repository.ConstraintUsersUsername}
		case u.Email == user.Email:
			return &repository.UniqueViolation{Constraint: repository.ConstraintUsersEmail}
		case u.Phone != nil && user.Phone != nil && *u.Phone == *user.Phone:
			return &repository.UniqueViolation{Constraint: repository.ConstraintUsersPhone}
		}
	}
	assignID(&user.ID)
	user.CreatedAt = timestamps.tick()
	user.UpdatedAt = user.CreatedAt
	m.byID[user.ID] = *user
	return nil
}

func (m *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *Users) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Communities stores communities.
type Communities struct {
	mu   sync.Mutex
	byID map[string]domain.Community
}

// NewCommunities returns a store holding seed.
func NewCommunities(seed ...domain.Community) *Communities {
	m := &Communities{byID: map[string]domain.Community{}}
	for _, c := range seed {
		m.byID[c.ID] = c
	}
	return m
}

func (m *Communities) Create(_ context.Context, community *domain.Community) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Name == community.Name {
			return &repository.UniqueViolation{Constraint: repository.ConstraintCommunitiesName}
		}
	}
	assignID(&community.ID)
	community.CreatedAt = timestamps.tick()
	m.byID[community.ID] = *community
	return nil
}

func (m *Communities) GetByID(_ context.Context, id string) (*domain.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *Communities) List(_ context.Context) ([]domain.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Community, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Posts stores community posts. Updates counts successful Update calls.
type Posts struct {
	mu      sync.Mutex
	byID    map[string]domain.CommunityPost
	likes   *Likes
	Updates int
}

// NewPosts returns an empty store. When likes is non-nil, reads carry like counts and
// deleting a post removes its likes.
func NewPosts(likes *Likes) *Posts {
	return &Posts{byID: map[string]domain.CommunityPost{}, likes: likes}
}

func (m *Posts) Create(_ context.Context, post *domain.CommunityPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	assignID(&post.ID)
	post.CreatedAt = timestamps.tick()
	post.UpdatedAt = post.CreatedAt
	m.byID[post.ID] = *post
	return nil
}

func (m *Posts) Update(_ context.Context, post *domain.CommunityPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title, stored.Content = post.Title, post.Content
	stored.UpdatedAt = timestamps.tick()
	post.UpdatedAt = stored.UpdatedAt
	m.byID[post.ID] = stored
	m.Updates++
	return nil
}

func (m *Posts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	if m.likes != nil {
		m.likes.deletePost(id)
	}
	return nil
}

func (m *Posts) GetByID(_ context.Context, id string) (*domain.CommunityPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.LikeCount = m.likeCount(id)
	return &p, nil
}

func (m *Posts) List(_ context.Context, filter repository.PostFilter) ([]domain.CommunityPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.CommunityPost{}
	for _, p := range m.byID {
		if filter.CommunityID != nil && p.CommunityID != *filter.CommunityID {
			continue
		}
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		p.LikeCount = m.likeCount(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []domain.CommunityPost{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *Posts) likeCount(postID string) int {
	if m.likes == nil {
		return 0
	}
	likes, _ := m.likes.ListByPost(context.Background(), postID)
	return len(likes)
}

// Likes stores post likes, unique per (post, user).
type Likes struct {
	mu    sync.Mutex
	likes []domain.PostLike
}

// NewLikes returns an empty store.
func NewLikes() *Likes { return &Likes{} }

func (m *Likes) Create(_ context.Context, like *domain.PostLike) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return &repository.UniqueViolation{Constraint: repository.ConstraintPostLikesPair}
		}
	}
	assignID(&like.ID)
	like.CreatedAt = timestamps.tick()
	m.likes = append(m.likes, *like)
	return nil
}

func (m *Likes) Delete(_ context.Context, postID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.likes {
		if l.PostID == postID && l.UserID == userID {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *Likes) ListByPost(_ context.Context, postID string) ([]domain.PostLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.PostLike{}
	for _, l := range m.likes {
		if l.PostID == postID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *Likes) deletePost(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.likes[:0]
	for _, l := range m.likes {
		if l.PostID != postID {
			kept = append(kept, l)
		}
	}
	m.likes = kept
}

// Transactions stores ledger entries. Calls counts every repository call.
type Transactions struct {
	mu    sync.Mutex
	byID  map[string]domain.Transaction
	Calls int
}

// NewTransactions returns an empty store.
func NewTransactions() *Transactions {
	return &Transactions{byID: map[string]domain.Transaction{}}
}

func (m *Transactions) Create(_ context.Context, tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	assignID(&tx.ID)
	tx.CreatedAt = timestamps.tick()
	m.byID[tx.ID] = *tx
	return nil
}

func (m *Transactions) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	tx, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tx, nil
}

func (m *Transactions) ListByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	out := []domain.Transaction{}
	for _, tx := range m.byID {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Transactions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// Stores stores storefronts, unique per owner and per name.
type Stores struct {
	mu   sync.Mutex
	byID map[string]domain.Store
}

// NewStores returns a store holding seed.
func NewStores(seed ...domain.Store) *Stores {
	m := &Stores{byID: map[string]domain.Store{}}
	for _, s := range seed {
		m.byID[s.ID] = s
	}
	return m
}

func (m *Stores) Create(_ context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.OwnerID == store.OwnerID {
			return &repository.UniqueViolation{Constraint: repository.ConstraintStoresOwner}
		}
		if s.Name == store.Name {
			return &repository.UniqueViolation{Constraint: repository.ConstraintStoresName}
		}
	}
	assignID(&store.ID)
	store.CreatedAt = timestamps.tick()
	store.UpdatedAt = store.CreatedAt
	m.byID[store.ID] = *store
	return nil
}

func (m *Stores) Update(_ context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[store.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, s := range m.byID {
		if s.ID != store.ID && s.Name == store.Name {
			return &repository.UniqueViolation{Constraint: repository.ConstraintStoresName}
		}
	}
	store.UpdatedAt = timestamps.tick()
	m.byID[store.ID] = *store
	return nil
}

func (m *Stores) GetByID(_ context.Context, id string) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *Stores) GetByOwner(_ context.Context, ownerUserID string) (*domain.Store, error) {
	return m.find(func(s domain.Store) bool { return s.OwnerID == ownerUserID })
}

func (m *Stores) GetByName(_ context.Context, name string) (*domain.Store, error) {
	return m.find(func(s domain.Store) bool { return s.Name == name })
}

func (m *Stores) find(match func(domain.Store) bool) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if match(s) {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Themes stores theme customizations keyed by store.
type Themes struct {
	mu      sync.Mutex
	byStore map[string]domain.ThemeCustomization
}

// NewThemes returns an empty store.
func NewThemes() *Themes {
	return &Themes{byStore: map[string]domain.ThemeCustomization{}}
}

// Has reports whether storeID has a theme.
func (m *Themes) Has(storeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byStore[storeID]
	return ok
}

func (m *Themes) Create(_ context.Context, theme *domain.ThemeCustomization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byStore[theme.StoreID]; ok {
		return &repository.UniqueViolation{Constraint: repository.ConstraintThemesStore}
	}
	assignID(&theme.ID)
	theme.CreatedAt = timestamps.tick()
	theme.UpdatedAt = theme.CreatedAt
	m.byStore[theme.StoreID] = *theme
	return nil
}

func (m *Themes) Upsert(_ context.Context, theme *domain.ThemeCustomization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := timestamps.tick()
	if existing, ok := m.byStore[theme.StoreID]; ok {
		theme.ID, theme.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		theme.ID, theme.CreatedAt = uuid.NewString(), now
	}
	theme.UpdatedAt = now
	m.byStore[theme.StoreID] = *theme
	return nil
}

func (m *Themes) GetByStore(_ context.Context, storeID string) (*domain.ThemeCustomization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byStore[storeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (m *Themes) DeleteByStore(_ context.Context, storeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byStore[storeID]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byStore, storeID)
	return nil
}
