package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

type EntryServiceConfig struct {
	MaxTeamsPerPerson int
	// SubmissionDeadline closes Create and Update once passed. Zero
	// means submissions stay open.
	SubmissionDeadline time.Time
}

type EntryService struct {
	cfg       EntryServiceConfig
	entryRepo entry.Repository
	userRepo  user.Repository
	now       func() time.Time
}

func NewEntryService(cfg EntryServiceConfig, entryRepo entry.Repository, userRepo user.Repository) *EntryService {
	if cfg.MaxTeamsPerPerson < 1 {
		cfg.MaxTeamsPerPerson = 5
	}
	return &EntryService{
		cfg:       cfg,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

type SubmitEntryInput struct {
	Email      string
	Name       string
	TeamNumber int
	QB         entry.PlayerPick
	WR         entry.PlayerPick
	RB         entry.PlayerPick
	TE         entry.PlayerPick
}

// Create validates and stores a new team entry, linking it to the
// submitting user (created on first submission).
func (s *EntryService) Create(ctx context.Context, input SubmitEntryInput) (entry.TeamEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Create")
	defer span.End()

	if err := s.checkDeadline(); err != nil {
		return entry.TeamEntry{}, err
	}

	row := entry.TeamEntry{
		Email:      input.Email,
		TeamNumber: input.TeamNumber,
		QB:         input.QB,
		WR:         input.WR,
		RB:         input.RB,
		TE:         input.TE,
		CreatedAt:  s.now().UTC(),
	}
	if err := row.ValidateBasic(s.cfg.MaxTeamsPerPerson); err != nil {
		return entry.TeamEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	email := row.NormalizedEmail()
	existing, err := s.entryRepo.ListByEmail(ctx, email)
	if err != nil {
		return entry.TeamEntry{}, fmt.Errorf("list entries by email: %w", err)
	}
	if len(existing) >= s.cfg.MaxTeamsPerPerson {
		return entry.TeamEntry{}, fmt.Errorf("%w: max %d teams per person", ErrEntryLimitExceeded, s.cfg.MaxTeamsPerPerson)
	}

	owner, err := s.userRepo.UpsertByEmail(ctx, email, input.Name)
	if err != nil {
		return entry.TeamEntry{}, fmt.Errorf("upsert user email=%s: %w", email, err)
	}
	row.Email = email
	row.UserID = owner.ID

	created, err := s.entryRepo.Create(ctx, row)
	if err != nil {
		if errors.Is(err, entry.ErrDuplicateTeamNumber) {
			return entry.TeamEntry{}, err
		}
		return entry.TeamEntry{}, fmt.Errorf("create entry email=%s team=%d: %w", email, row.TeamNumber, err)
	}

	return created, nil
}

// Update replaces the four picks on an existing entry. The entry's
// identity and creation time are preserved.
func (s *EntryService) Update(ctx context.Context, input SubmitEntryInput) (entry.TeamEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Update")
	defer span.End()

	if err := s.checkDeadline(); err != nil {
		return entry.TeamEntry{}, err
	}

	row := entry.TeamEntry{
		Email:      input.Email,
		TeamNumber: input.TeamNumber,
		QB:         input.QB,
		WR:         input.WR,
		RB:         input.RB,
		TE:         input.TE,
	}
	if err := row.ValidateBasic(s.cfg.MaxTeamsPerPerson); err != nil {
		return entry.TeamEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	email := row.NormalizedEmail()
	existing, err := s.entryRepo.ListByEmail(ctx, email)
	if err != nil {
		return entry.TeamEntry{}, fmt.Errorf("list entries by email: %w", err)
	}

	var current *entry.TeamEntry
	for i := range existing {
		if existing[i].TeamNumber == row.TeamNumber {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return entry.TeamEntry{}, fmt.Errorf("%w: entry email=%s team=%d", ErrNotFound, email, row.TeamNumber)
	}

	row.ID = current.ID
	row.Email = email
	row.UserID = current.UserID
	row.CreatedAt = current.CreatedAt

	updated, err := s.entryRepo.Update(ctx, row)
	if err != nil {
		return entry.TeamEntry{}, fmt.Errorf("update entry id=%d: %w", row.ID, err)
	}

	return updated, nil
}

// ListByOwner returns the caller's entries ordered by team number.
func (s *EntryService) ListByOwner(ctx context.Context, email string) ([]entry.TeamEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListByOwner")
	defer span.End()

	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	entries, err := s.entryRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list entries by email: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TeamNumber < entries[j].TeamNumber
	})

	return entries, nil
}

// ListAll returns every submitted entry, newest first.
func (s *EntryService) ListAll(ctx context.Context) ([]entry.TeamEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListAll")
	defer span.End()

	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all entries: %w", err)
	}

	return entries, nil
}

func (s *EntryService) checkDeadline() error {
	if s.cfg.SubmissionDeadline.IsZero() {
		return nil
	}
	if s.now().After(s.cfg.SubmissionDeadline) {
		return fmt.Errorf("%w: deadline was %s", ErrSubmissionClosed, s.cfg.SubmissionDeadline.Format(time.RFC3339))
	}
	return nil
}
