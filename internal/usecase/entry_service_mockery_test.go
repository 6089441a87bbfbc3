package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
	entrymock "github.com/mlahargou/fantasy-playoffs/internal/mocks/domain/entry"
	usermock "github.com/mlahargou/fantasy-playoffs/internal/mocks/domain/user"
)

func TestEntryService_Create_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entryRepo := entrymock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	svc := NewEntryService(EntryServiceConfig{MaxTeamsPerPerson: 5}, entryRepo, userRepo)

	entryRepo.
		On("ListByEmail", mock.Anything, "owner@example.com").
		Return(nil, nil).
		Once()
	userRepo.
		On("UpsertByEmail", mock.Anything, "owner@example.com", "Test Owner").
		Return(user.User{ID: 42, Email: "owner@example.com"}, nil).
		Once()
	entryRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(row entry.TeamEntry) bool {
			return row.UserID == 42 && row.TeamNumber == 1 && !row.CreatedAt.IsZero()
		})).
		Return(entry.TeamEntry{ID: 7, UserID: 42, Email: "owner@example.com", TeamNumber: 1, CreatedAt: time.Now().UTC()}, nil).
		Once()

	created, err := svc.Create(ctx, submitInput("owner@example.com", 1))
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("unexpected entry id: %d", created.ID)
	}
}

func TestEntryService_Create_LimitExceededUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entryRepo := entrymock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	svc := NewEntryService(EntryServiceConfig{MaxTeamsPerPerson: 2}, entryRepo, userRepo)

	existing := []entry.TeamEntry{
		testEntry("owner@example.com", 1, "qb-1", "wr-1", "rb-1", "te-1"),
		testEntry("owner@example.com", 2, "qb-2", "wr-2", "rb-2", "te-2"),
	}
	entryRepo.
		On("ListByEmail", mock.Anything, "owner@example.com").
		Return(existing, nil).
		Once()

	_, err := svc.Create(ctx, submitInput("owner@example.com", 2))
	if !errors.Is(err, ErrEntryLimitExceeded) {
		t.Fatalf("expected ErrEntryLimitExceeded, got %v", err)
	}
}
