package entry

import (
	"context"
	"errors"
)

// ErrDuplicateTeamNumber is returned by stores when an entry already
// exists for the same (owner email, team number) pair.
var ErrDuplicateTeamNumber = errors.New("team number already submitted for this owner")

// Repository describes entry persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]TeamEntry, error)
	ListByEmail(ctx context.Context, email string) ([]TeamEntry, error)
	Create(ctx context.Context, e TeamEntry) (TeamEntry, error)
	Update(ctx context.Context, e TeamEntry) (TeamEntry, error)
	LinkUser(ctx context.Context, entryID, userID int64) error
}
