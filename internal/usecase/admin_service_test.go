package usecase

import (
	"errors"
	"testing"

	"github.com/mlahargou/fantasy-playoffs/internal/infrastructure/repository/memory"
)

func TestAdminService_BackfillUserLinks(t *testing.T) {
	t.Parallel()

	entryRepo := memory.NewEntryRepository()
	userRepo := memory.NewUserRepository()
	svc := NewAdminService(userRepo, entryRepo, memory.NewPaymentRepository())
	ctx := t.Context()

	// Two unlinked entries for one owner, one for another, one already linked.
	for _, row := range []struct {
		email string
		team  int
	}{
		{"first@example.com", 1},
		{"first@example.com", 2},
		{"second@example.com", 1},
	} {
		if _, err := entryRepo.Create(ctx, testEntry(row.email, row.team, "qb-1", "wr-1", "rb-1", "te-1")); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
	linked := testEntry("third@example.com", 1, "qb-1", "wr-1", "rb-1", "te-1")
	linked.UserID = 99
	if _, err := entryRepo.Create(ctx, linked); err != nil {
		t.Fatalf("seed linked entry: %v", err)
	}

	result, err := svc.BackfillUserLinks(ctx)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if result.EntryCount != 4 {
		t.Errorf("entry count = %d, want 4", result.EntryCount)
	}
	if result.LinkedCount != 3 {
		t.Errorf("linked count = %d, want 3", result.LinkedCount)
	}
	if result.SkippedCount != 1 {
		t.Errorf("skipped count = %d, want 1", result.SkippedCount)
	}
	if result.UserCount != 2 {
		t.Errorf("user count = %d, want 2", result.UserCount)
	}

	entries, err := entryRepo.ListByEmail(ctx, "first@example.com")
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if entries[0].UserID <= 0 || entries[0].UserID != entries[1].UserID {
		t.Errorf("expected both entries linked to the same user, got %d and %d", entries[0].UserID, entries[1].UserID)
	}
}

func TestAdminService_RecordPayment(t *testing.T) {
	t.Parallel()

	paymentRepo := memory.NewPaymentRepository()
	svc := NewAdminService(memory.NewUserRepository(), memory.NewEntryRepository(), paymentRepo)
	ctx := t.Context()

	record, err := svc.RecordPayment(ctx, RecordPaymentInput{UserID: 7, TeamsPaid: 3, Notes: " venmo "})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if record.TeamsPaid != 3 || record.Notes != "venmo" {
		t.Errorf("unexpected record: %+v", record)
	}

	got, exists, err := paymentRepo.GetByUser(ctx, 7)
	if err != nil || !exists {
		t.Fatalf("expected stored record: exists=%v err=%v", exists, err)
	}
	if got.TeamsPaid != 3 {
		t.Errorf("teams paid = %d, want 3", got.TeamsPaid)
	}
}

func TestAdminService_RecordPayment_NegativeTeams(t *testing.T) {
	t.Parallel()

	svc := NewAdminService(memory.NewUserRepository(), memory.NewEntryRepository(), memory.NewPaymentRepository())

	_, err := svc.RecordPayment(t.Context(), RecordPaymentInput{UserID: 7, TeamsPaid: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminService_SetAdmin_RequiresUserID(t *testing.T) {
	t.Parallel()

	svc := NewAdminService(memory.NewUserRepository(), memory.NewEntryRepository(), memory.NewPaymentRepository())

	if err := svc.SetAdmin(t.Context(), 0, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
