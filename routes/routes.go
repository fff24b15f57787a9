package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abiiranathan/recordroom/ui"
)

// loadFailed is shown above placeholder rows when a query fails.
const loadFailed = "Failed to load data. Please try again."

func render(renderer *ui.Renderer, w http.ResponseWriter, page ui.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func Home(renderer *ui.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(renderer, w, ui.HomePage(ui.SectionHome))
	}
}

func Others(renderer *ui.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(renderer, w, ui.HomePage(ui.SectionOthers))
	}
}

func parseForm(w http.ResponseWriter, r *http.Request, t ui.Target) (ui.FilterState, bool) {
	state, err := ui.ParseForm(t, r.URL.Query())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ui.ErrInvalidParam) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return ui.FilterState{}, false
	}
	return state, true
}

// BrowseTaluk renders the taluk office section. On failure it falls back to
// placeholder rows and an error panel with a retry link.
func BrowseTaluk(renderer *ui.Renderer, store Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, ok := parseForm(w, r, ui.TargetTaluk)
		if !ok {
			return
		}

		page, err := store.QueryTaluk(r.Context(), state.TalukQuery())
		if err != nil {
			slog.Error("taluk data query failed", "error", err)
			render(renderer, w, ui.TalukPage(state, ui.PlaceholderTaluk(), loadFailed))
			return
		}
		render(renderer, w, ui.TalukPage(state, page, ""))
	}
}

// BrowseVillage renders the village section with cascading dropdowns.
func BrowseVillage(renderer *ui.Renderer, store Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, ok := parseForm(w, r, ui.TargetVillage)
		if !ok {
			return
		}

		page, err := store.QueryVillage(r.Context(), state.VillageQuery())
		if err != nil {
			slog.Error("village data query failed", "error", err)
			render(renderer, w, ui.VillagePage(state, ui.PlaceholderVillage(), loadFailed))
			return
		}
		render(renderer, w, ui.VillagePage(state, page, ""))
	}
}
