package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/payment"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

type AdminService struct {
	userRepo    user.Repository
	entryRepo   entry.Repository
	paymentRepo payment.Repository
}

func NewAdminService(userRepo user.Repository, entryRepo entry.Repository, paymentRepo payment.Repository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
	}
}

// ListManagers returns every registered user.
func (s *AdminService) ListManagers(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListManagers")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// SetAdmin grants or revokes admin on a user.
func (s *AdminService) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetAdmin")
	defer span.End()

	if userID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if err := s.userRepo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return fmt.Errorf("set admin user=%d: %w", userID, err)
	}

	return nil
}

// ListPayments returns the payment ledger for all users.
func (s *AdminService) ListPayments(ctx context.Context) ([]payment.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListPayments")
	defer span.End()

	records, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return records, nil
}

type RecordPaymentInput struct {
	UserID    int64
	TeamsPaid int
	Notes     string
}

// RecordPayment upserts the paid-team count and notes for a user.
func (s *AdminService) RecordPayment(ctx context.Context, input RecordPaymentInput) (payment.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecordPayment")
	defer span.End()

	if input.UserID <= 0 {
		return payment.Record{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.TeamsPaid < 0 {
		return payment.Record{}, fmt.Errorf("%w: teams paid cannot be negative", ErrInvalidInput)
	}

	record, err := s.paymentRepo.Upsert(ctx, payment.Record{
		UserID:    input.UserID,
		TeamsPaid: input.TeamsPaid,
		Notes:     strings.TrimSpace(input.Notes),
	})
	if err != nil {
		return payment.Record{}, fmt.Errorf("upsert payment user=%d: %w", input.UserID, err)
	}

	return record, nil
}

type BackfillResult struct {
	EntryCount   int `json:"entry_count"`
	LinkedCount  int `json:"linked_count"`
	SkippedCount int `json:"skipped_count"`
	UserCount    int `json:"user_count"`
}

// BackfillUserLinks creates users for entries submitted before accounts
// existed and links each unlinked entry to its owner by email.
func (s *AdminService) BackfillUserLinks(ctx context.Context) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.BackfillUserLinks")
	defer span.End()

	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("list all entries: %w", err)
	}

	result := BackfillResult{EntryCount: len(entries)}
	usersByEmail := make(map[string]user.User, len(entries))

	for _, item := range entries {
		if item.UserID > 0 {
			result.SkippedCount++
			continue
		}

		email := item.NormalizedEmail()
		if email == "" {
			result.SkippedCount++
			continue
		}

		owner, ok := usersByEmail[email]
		if !ok {
			owner, err = s.userRepo.UpsertByEmail(ctx, email, "")
			if err != nil {
				return BackfillResult{}, fmt.Errorf("upsert user email=%s: %w", email, err)
			}
			usersByEmail[email] = owner
		}

		if err := s.entryRepo.LinkUser(ctx, item.ID, owner.ID); err != nil {
			return BackfillResult{}, fmt.Errorf("link entry=%d to user=%d: %w", item.ID, owner.ID, err)
		}
		result.LinkedCount++
	}

	result.UserCount = len(usersByEmail)
	return result, nil
}
