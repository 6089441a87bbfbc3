package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
)

type EntryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]entry.TeamEntry
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{items: make(map[int64]entry.TeamEntry)}
}

func (r *EntryRepository) ListAll(_ context.Context) ([]entry.TeamEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.TeamEntry, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortEntriesNewestFirst(out)
	return out, nil
}

func (r *EntryRepository) ListByEmail(_ context.Context, email string) ([]entry.TeamEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.TeamEntry, 0, 4)
	for _, item := range r.items {
		if item.NormalizedEmail() == email {
			out = append(out, item)
		}
	}
	sortEntriesNewestFirst(out)
	return out, nil
}

func (r *EntryRepository) Create(_ context.Context, item entry.TeamEntry) (entry.TeamEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.NormalizedEmail() == item.NormalizedEmail() && existing.TeamNumber == item.TeamNumber {
			return entry.TeamEntry{}, entry.ErrDuplicateTeamNumber
		}
	}

	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return item, nil
}

func (r *EntryRepository) Update(_ context.Context, item entry.TeamEntry) (entry.TeamEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return entry.TeamEntry{}, errEntryNotFound
	}
	item.CreatedAt = current.CreatedAt
	r.items[item.ID] = item
	return item, nil
}

func (r *EntryRepository) LinkUser(_ context.Context, entryID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[entryID]
	if !ok {
		return errEntryNotFound
	}
	item.UserID = userID
	r.items[entryID] = item
	return nil
}

func sortEntriesNewestFirst(items []entry.TeamEntry) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
