package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/entries", RequireSession(verifier, http.HandlerFunc(handler.ListMyEntries)))
	mux.Handle("POST /v1/entries", RequireSession(verifier, http.HandlerFunc(handler.CreateEntry)))
	mux.Handle("PUT /v1/entries/{teamNumber}", RequireSession(verifier, http.HandlerFunc(handler.UpdateEntry)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/admin/managers", RequireAdmin(verifier, http.HandlerFunc(handler.ListManagers)))
	mux.Handle("PUT /v1/admin/managers", RequireAdmin(verifier, http.HandlerFunc(handler.SetAdmin)))
	mux.Handle("GET /v1/admin/payments", RequireAdmin(verifier, http.HandlerFunc(handler.ListPayments)))
	mux.Handle("PUT /v1/admin/payments", RequireAdmin(verifier, http.HandlerFunc(handler.RecordPayment)))
	mux.Handle("POST /v1/admin/backfill-users", RequireAdmin(verifier, http.HandlerFunc(handler.BackfillUserLinks)))
}
