package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/scoring"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type submitEntryRequest struct {
	TeamNumber int           `json:"teamNumber" validate:"required,min=1"`
	QB         playerPickDTO `json:"qb"`
	WR         playerPickDTO `json:"wr"`
	RB         playerPickDTO `json:"rb"`
	TE         playerPickDTO `json:"te"`
}

type scoredEntryDTO struct {
	Entry entryDTO     `json:"entry"`
	Score teamScoreDTO `json:"score"`
}

type teamScoreDTO struct {
	Total     float64                   `json:"total"`
	Breakdown map[string]playerScoreDTO `json:"breakdown"`
	Degraded  bool                      `json:"degraded"`
}

type playerScoreDTO struct {
	PlayerID string  `json:"playerId"`
	Points   float64 `json:"points"`
	Status   string  `json:"status"`
}

// ListMyEntries returns the session user's teams, newest first, each
// scored against the configured window.
func (h *Handler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEntries")
	defer span.End()

	owner, ok := sessionUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.entryService.ListByOwner(ctx, owner.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "list my entries failed", "user_id", owner.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	scores, err := h.leaderboardService.ScoreEntries(ctx, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "score my entries failed", "user_id", owner.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoredEntryDTO, 0, len(entries))
	for i, item := range entries {
		items = append(items, scoredEntryDTO{
			Entry: entryToDTO(item),
			Score: teamScoreToDTO(scores[i]),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEntry")
	defer span.End()

	owner, ok := sessionUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	req, err := decodeSubmitEntryRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.entryService.Create(ctx, submitEntryInput(owner.Email, owner.Name, req))
	if err != nil {
		h.logger.WarnContext(ctx, "create entry failed", "user_id", owner.ID, "team_number", req.TeamNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(created))
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEntry")
	defer span.End()

	owner, ok := sessionUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamNumber, err := strconv.Atoi(strings.TrimSpace(r.PathValue("teamNumber")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: team number must be an integer", usecase.ErrInvalidInput))
		return
	}

	req, err := decodeSubmitEntryRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.TeamNumber == 0 {
		req.TeamNumber = teamNumber
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.TeamNumber != teamNumber {
		writeError(ctx, w, fmt.Errorf("%w: team number mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}

	updated, err := h.entryService.Update(ctx, submitEntryInput(owner.Email, owner.Name, req))
	if err != nil {
		h.logger.WarnContext(ctx, "update entry failed", "user_id", owner.ID, "team_number", teamNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(updated))
}

func decodeSubmitEntryRequest(r *http.Request) (submitEntryRequest, error) {
	var req submitEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return submitEntryRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func submitEntryInput(email, name string, req submitEntryRequest) usecase.SubmitEntryInput {
	return usecase.SubmitEntryInput{
		Email:      email,
		Name:       name,
		TeamNumber: req.TeamNumber,
		QB:         pickFromDTO(req.QB),
		WR:         pickFromDTO(req.WR),
		RB:         pickFromDTO(req.RB),
		TE:         pickFromDTO(req.TE),
	}
}

func teamScoreToDTO(score scoring.TeamScore) teamScoreDTO {
	breakdown := make(map[string]playerScoreDTO, len(score.Breakdown))
	for pos, row := range score.Breakdown {
		breakdown[string(pos)] = playerScoreDTO{
			PlayerID: row.PlayerID,
			Points:   row.Points,
			Status:   string(row.Status),
		}
	}
	return teamScoreDTO{
		Total:     score.Total,
		Breakdown: breakdown,
		Degraded:  score.Degraded,
	}
}
