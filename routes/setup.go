package routes

import (
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abiiranathan/recordroom/ui"
)

// SetupRoutes builds the router serving the JSON API, the HTML pages and
// the static assets. Request logs go to logOut.
func SetupRoutes(logOut io.Writer, staticFs fs.FS, renderer *ui.Renderer, store Querier) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Logger(logOut))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	// JSON API
	r.Get("/taluk-data", TalukData(store))
	r.Get("/village-data", VillageData(store))
	r.Get("/files/{file_id}", ViewFile())
	r.Get("/healthz", Health(store))

	// HTML pages
	r.Get("/", Home(renderer))
	r.Get("/others", Others(renderer))
	r.Get("/browse/taluk", BrowseTaluk(renderer, store))
	r.Get("/browse/village", BrowseVillage(renderer, store))

	// Serve css and JS
	r.Handle("/static/*", http.FileServerFS(staticFs))
	return r
}
