package payment

import "context"

// Repository describes payment persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Record, error)
	GetByUser(ctx context.Context, userID int64) (Record, bool, error)
	Upsert(ctx context.Context, rec Record) (Record, error)
}
