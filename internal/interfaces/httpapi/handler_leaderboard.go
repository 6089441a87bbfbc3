package httpapi

import (
	"net/http"

	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type leaderboardRowDTO struct {
	Rank       int          `json:"rank"`
	Email      string       `json:"email"`
	TeamNumber int          `json:"teamNumber"`
	Entry      entryDTO     `json:"entry"`
	Score      teamScoreDTO `json:"score"`
}

type payoutDTO struct {
	Place  int     `json:"place"`
	Amount float64 `json:"amount"`
}

type leaderboardSummaryDTO struct {
	Participants int         `json:"participants"`
	EntryCount   int         `json:"entryCount"`
	TopScore     float64     `json:"topScore"`
	Pot          float64     `json:"pot"`
	Payouts      []payoutDTO `json:"payouts"`
	Degraded     bool        `json:"degraded"`
}

type leaderboardDTO struct {
	Rows    []leaderboardRowDTO   `json:"rows"`
	Summary leaderboardSummaryDTO `json:"summary"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	board, err := h.leaderboardService.ComputeLeaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func leaderboardToDTO(board usecase.Leaderboard) leaderboardDTO {
	rows := make([]leaderboardRowDTO, 0, len(board.Rows))
	for _, row := range board.Rows {
		rows = append(rows, leaderboardRowDTO{
			Rank:       row.Rank,
			Email:      row.Email,
			TeamNumber: row.TeamNumber,
			Entry:      entryToDTO(row.Entry),
			Score:      teamScoreToDTO(row.Score),
		})
	}

	payouts := make([]payoutDTO, 0, len(board.Summary.Payouts))
	for _, payout := range board.Summary.Payouts {
		payouts = append(payouts, payoutDTO{Place: payout.Place, Amount: payout.Amount})
	}

	return leaderboardDTO{
		Rows: rows,
		Summary: leaderboardSummaryDTO{
			Participants: board.Summary.Participants,
			EntryCount:   board.Summary.EntryCount,
			TopScore:     board.Summary.TopScore,
			Pot:          board.Summary.Pot,
			Payouts:      payouts,
			Degraded:     board.Summary.Degraded,
		},
	}
}
