package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

type playerSearchDTO struct {
	Players []playerDTO `json:"players"`
	// ProviderUnavailable tells the submission form to fall back to
	// free-text picks instead of hiding the search box.
	ProviderUnavailable bool `json:"providerUnavailable"`
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	query := r.URL.Query()
	input := usecase.SearchPlayersInput{
		Position: strings.TrimSpace(query.Get("position")),
		Query:    strings.TrimSpace(query.Get("search")),
	}

	players, err := h.rosterService.SearchPlayers(ctx, input)
	if err != nil {
		if errors.Is(err, usecase.ErrProviderUnavailable) {
			h.logger.WarnContext(ctx, "roster search degraded", "position", input.Position, "error", err)
			writeSuccess(ctx, w, http.StatusOK, playerSearchDTO{
				Players:             []playerDTO{},
				ProviderUnavailable: true,
			})
			return
		}
		h.logger.WarnContext(ctx, "roster search failed", "position", input.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, playerSearchDTO{Players: items})
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		Name:     v.Name,
		Team:     v.Team,
		Position: string(v.Position),
	}
}
