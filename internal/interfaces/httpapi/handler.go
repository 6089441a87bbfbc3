package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type Handler struct {
	rosterService      *usecase.RosterService
	entryService       *usecase.EntryService
	leaderboardService *usecase.LeaderboardService
	adminService       *usecase.AdminService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	entryService *usecase.EntryService,
	leaderboardService *usecase.LeaderboardService,
	adminService *usecase.AdminService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:      rosterService,
		entryService:       entryService,
		leaderboardService: leaderboardService,
		adminService:       adminService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerPickDTO struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Team string `json:"team" validate:"required"`
}

type entryDTO struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	TeamNumber   int           `json:"teamNumber"`
	QB           playerPickDTO `json:"qb"`
	WR           playerPickDTO `json:"wr"`
	RB           playerPickDTO `json:"rb"`
	TE           playerPickDTO `json:"te"`
	CreatedAtUTC string        `json:"createdAtUtc"`
}

func pickToDTO(p entry.PlayerPick) playerPickDTO {
	return playerPickDTO{ID: p.ID, Name: p.Name, Team: p.Team}
}

func pickFromDTO(p playerPickDTO) entry.PlayerPick {
	return entry.PlayerPick{ID: p.ID, Name: p.Name, Team: p.Team}
}

func entryToDTO(item entry.TeamEntry) entryDTO {
	return entryDTO{
		ID:           item.ID,
		Email:        item.Email,
		TeamNumber:   item.TeamNumber,
		QB:           pickToDTO(item.QB),
		WR:           pickToDTO(item.WR),
		RB:           pickToDTO(item.RB),
		TE:           pickToDTO(item.TE),
		CreatedAtUTC: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
