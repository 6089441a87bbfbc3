package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[int64]payment.Record
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[int64]payment.Record)}
}

func (r *PaymentRepository) ListAll(_ context.Context) ([]payment.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Record, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *PaymentRepository) GetByUser(_ context.Context, userID int64) (payment.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *PaymentRepository) Upsert(_ context.Context, item payment.Record) (payment.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = time.Now().UTC()
	r.items[item.UserID] = item
	return item, nil
}
