package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type managerDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	IsAdmin      bool   `json:"isAdmin"`
	TeamCount    int    `json:"teamCount"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type setAdminRequest struct {
	UserID  int64 `json:"userId" validate:"required,min=1"`
	IsAdmin bool  `json:"isAdmin"`
}

type paymentRowDTO struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	TeamCount    int    `json:"teamCount"`
	TeamsPaid    int    `json:"teamsPaid"`
	Notes        string `json:"notes"`
	UpdatedAtUTC string `json:"updatedAtUtc,omitempty"`
}

type recordPaymentRequest struct {
	UserID    int64  `json:"userId" validate:"required,min=1"`
	TeamsPaid int    `json:"teamsPaid" validate:"min=0"`
	Notes     string `json:"notes" validate:"max=500"`
}

// ListManagers returns every registered user with their submitted
// team count, name ascending.
func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagers")
	defer span.End()

	managers, err := h.adminService.ListManagers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list managers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	teamCounts, err := h.teamCountsByEmail(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "count teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]managerDTO, 0, len(managers))
	for _, m := range managers {
		items = append(items, managerDTO{
			ID:           m.ID,
			Email:        m.Email,
			Name:         m.Name,
			IsAdmin:      m.IsAdmin,
			TeamCount:    teamCounts[user.NormalizeEmail(m.Email)],
			CreatedAtUTC: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		left := strings.ToLower(items[i].Name)
		right := strings.ToLower(items[j].Name)
		if left != right {
			return left < right
		}
		return items[i].Email < items[j].Email
	})

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAdmin")
	defer span.End()

	var req setAdminRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.adminService.SetAdmin(ctx, req.UserID, req.IsAdmin); err != nil {
		h.logger.WarnContext(ctx, "set admin failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"userId": req.UserID, "isAdmin": req.IsAdmin})
}

// ListPayments joins users, their team counts, and the payment ledger.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayments")
	defer span.End()

	managers, err := h.adminService.ListManagers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list managers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	payments, err := h.adminService.ListPayments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list payments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	teamCounts, err := h.teamCountsByEmail(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "count teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	paidByUser := make(map[int64]paymentRowDTO, len(payments))
	for _, p := range payments {
		paidByUser[p.UserID] = paymentRowDTO{
			TeamsPaid:    p.TeamsPaid,
			Notes:        p.Notes,
			UpdatedAtUTC: p.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}

	items := make([]paymentRowDTO, 0, len(managers))
	for _, m := range managers {
		row := paidByUser[m.ID]
		row.UserID = m.ID
		row.Email = m.Email
		row.Name = m.Name
		row.TeamCount = teamCounts[user.NormalizeEmail(m.Email)]
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Email < items[j].Email })

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPayment")
	defer span.End()

	var req recordPaymentRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.adminService.RecordPayment(ctx, usecase.RecordPaymentInput{
		UserID:    req.UserID,
		TeamsPaid: req.TeamsPaid,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record payment failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentRowDTO{
		UserID:       record.UserID,
		TeamsPaid:    record.TeamsPaid,
		Notes:        record.Notes,
		UpdatedAtUTC: record.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// BackfillUserLinks creates user rows for pre-auth entries and links
// them by email.
func (h *Handler) BackfillUserLinks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BackfillUserLinks")
	defer span.End()

	result, err := h.adminService.BackfillUserLinks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "backfill user links failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) teamCountsByEmail(ctx context.Context) (map[string]int, error) {
	entries, err := h.entryService.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(entries))
	for _, item := range entries {
		counts[item.NormalizedEmail()]++
	}
	return counts, nil
}
