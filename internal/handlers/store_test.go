package handlers

import (
	"context"
	"sync"
	"time"

	"orumgs-api/internal/models"
	"orumgs-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for handler tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int]*models.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, store.ErrEmailTaken
		}
	}
	u := &models.User{
		ID:        f.nextID,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.users[u.ID] = u
	f.nextID++
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for id := 1; id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id int, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpires = &expires
	return nil
}

func (f *fakeUserStore) FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email &&
			u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpires = nil
	return nil
}

// expireResetToken backdates the stored expiry, for expiry tests.
func (f *fakeUserStore) expireResetToken(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok && u.ResetTokenExpires != nil {
		past := time.Now().Add(-time.Minute)
		u.ResetTokenExpires = &past
	}
}

// fakeMailer records reset emails instead of sending them.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // reset links per call
	fail  error
	calls int
}

func (f *fakeMailer) SendPasswordResetEmail(to, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, resetLink)
	return nil
}
