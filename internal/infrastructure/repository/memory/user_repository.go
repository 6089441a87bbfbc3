package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

var (
	errEntryNotFound = errors.New("entry not found")
	errUserNotFound  = errors.New("user not found")
)

type UserRepository struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]user.User
	sessions map[string]user.Session
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:    make(map[int64]user.User),
		sessions: make(map[string]user.Session),
	}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, item := range r.users {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = user.NormalizeEmail(email)
	for _, item := range r.users {
		if item.Email == email {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) UpsertByEmail(_ context.Context, email, name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = user.NormalizeEmail(email)
	for id, item := range r.users {
		if item.Email == email {
			if name != "" && item.Name == "" {
				item.Name = name
				r.users[id] = item
			}
			return item, nil
		}
	}

	r.nextID++
	item := user.User{
		ID:        r.nextID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	r.users[item.ID] = item
	return item, nil
}

func (r *UserRepository) SetAdmin(_ context.Context, userID int64, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.users[userID]
	if !ok {
		return errUserNotFound
	}
	item.IsAdmin = isAdmin
	r.users[userID] = item
	return nil
}

func (r *UserRepository) GetBySessionToken(_ context.Context, token string, now time.Time) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok || session.ExpiresAt.Before(now) {
		return user.User{}, false, nil
	}
	item, ok := r.users[session.UserID]
	if !ok {
		return user.User{}, false, nil
	}
	return item, true, nil
}

// PutSession registers a session for tests and local runs.
func (r *UserRepository) PutSession(session user.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = session
}
