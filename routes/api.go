package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/ui"
)

// Querier is the read side of the record store.
type Querier interface {
	QueryTaluk(ctx context.Context, q database.TalukQuery) (database.TalukPage, error)
	QueryVillage(ctx context.Context, q database.VillageQuery) (database.VillagePage, error)
	Ping(ctx context.Context) error
}

type talukResponse struct {
	Success bool `json:"success"`
	database.TalukPage
}

type villageResponse struct {
	Success bool `json:"success"`
	database.VillagePage
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FileResponse acknowledges a view request for a file.
type FileResponse struct {
	Success bool   `json:"success"`
	FileID  int64  `json:"file_id"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("unable to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, label string, err error) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: label, Message: err.Error()})
}

// queryFailed answers 500. Connectivity failures and query failures only
// differ by label.
func queryFailed(w http.ResponseWriter, r *http.Request, err error) {
	label := "An error occurred"
	if database.IsUnavailable(err) {
		label = "Database connection failed"
	}
	slog.Error("query failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, label, err)
}

// TalukData serves GET /taluk-data.
func TalukData(store Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := ui.ParseFilterState(ui.TargetTaluk, r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid parameter", err)
			return
		}

		page, err := store.QueryTaluk(r.Context(), state.TalukQuery())
		if err != nil {
			queryFailed(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, talukResponse{Success: true, TalukPage: page})
	}
}

// VillageData serves GET /village-data.
func VillageData(store Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := ui.ParseFilterState(ui.TargetVillage, r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid parameter", err)
			return
		}

		page, err := store.QueryVillage(r.Context(), state.VillageQuery())
		if err != nil {
			queryFailed(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, villageResponse{Success: true, VillagePage: page})
	}
}

// ViewFile acknowledges a request to view a file. Documents are served by
// an external viewer; only the identifier is checked here.
func ViewFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "file_id")
		fileID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || fileID <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid parameter", fmt.Errorf("invalid file id: %q", raw))
			return
		}

		writeJSON(w, http.StatusOK, FileResponse{
			Success: true,
			FileID:  fileID,
			Message: fmt.Sprintf("Viewing file with ID: %d", fileID),
		})
	}
}

// Health reports whether the database answers a ping.
func Health(store Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Database connection failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
