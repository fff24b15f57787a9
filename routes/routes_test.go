package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/ui"
)

type fakeStore struct {
	err     error
	taluk   []database.TalukQuery
	village []database.VillageQuery
}

func (f *fakeStore) QueryTaluk(ctx context.Context, q database.TalukQuery) (database.TalukPage, error) {
	f.taluk = append(f.taluk, q)
	if f.err != nil {
		return database.TalukPage{}, f.err
	}
	return database.TalukPage{
		Data:       []database.TalukRecord{},
		Pagination: database.NewPagination(q.Page, q.Limit, 0),
		Filters:    database.TalukFilters{Years: []string{}, Offices: []string{}},
	}, nil
}

func (f *fakeStore) QueryVillage(ctx context.Context, q database.VillageQuery) (database.VillagePage, error) {
	f.village = append(f.village, q)
	if f.err != nil {
		return database.VillagePage{}, f.err
	}
	return ui.PlaceholderVillage(), nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.err }

func newRouter(t *testing.T, store Querier) http.Handler {
	t.Helper()
	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	static := fstest.MapFS{"static/app.js": {Data: []byte("// app")}}
	return SetupRoutes(io.Discard, static, renderer, store)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTalukData_Params(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   database.TalukQuery
	}{
		{"defaults", "/taluk-data", database.TalukQuery{Page: 1, Limit: 20}},
		{"clamped limit", "/taluk-data?limit=9999&page=0", database.TalukQuery{Page: 1, Limit: 100}},
		{"filters", "/taluk-data?search=CR&year=1999-2000&office=Taluk+Office&page=3",
			database.TalukQuery{Search: "CR", Year: "1999-2000", Office: "Taluk Office", Page: 3, Limit: 20}},
		{"unparseable numbers", "/taluk-data?page=abc&limit=x", database.TalukQuery{Page: 1, Limit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			w := serve(newRouter(t, store), http.MethodGet, tt.target)

			require.Equal(t, http.StatusOK, w.Code)
			require.Len(t, store.taluk, 1)
			assert.Equal(t, tt.want, store.taluk[0])
		})
	}
}

func TestTalukData_Body(t *testing.T) {
	w := serve(newRouter(t, &fakeStore{}), http.MethodGet, "/taluk-data")

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, map[string]any{"page": 1.0, "limit": 20.0, "total": 0.0, "pages": 1.0}, body["pagination"])
	assert.Contains(t, body, "filters")
}

func TestVillageData(t *testing.T) {
	store := &fakeStore{}
	w := serve(newRouter(t, store), http.MethodGet, "/village-data?district=19&taluk=9&category=File&limit=9999")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, store.village, 1)
	q := store.village[0]
	assert.Equal(t, 19, q.District)
	assert.Equal(t, 9, q.Taluk)
	assert.Equal(t, "File", q.Category)
	assert.Equal(t, 500, q.Limit)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "village_codes")
	row := body["data"].([]any)[0].(map[string]any)
	assert.Nil(t, row["File_No"])
	assert.Equal(t, "Register", row["data-category"])
}

func TestVillageData_InvalidCode(t *testing.T) {
	store := &fakeStore{}
	w := serve(newRouter(t, store), http.MethodGet, "/village-data?district=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
	assert.Empty(t, store.village)
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		label string
	}{
		{"unavailable", database.ErrUnavailable, "Database connection failed"},
		{"query", errors.New("no such column: Year"), "An error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/taluk-data", "/village-data"} {
				w := serve(newRouter(t, &fakeStore{err: tt.err}), http.MethodGet, path)
				require.Equal(t, http.StatusInternalServerError, w.Code)

				body := decode(t, w)
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.label, body["error"])
				assert.Equal(t, tt.err.Error(), body["message"])
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	store := &fakeStore{}
	w := serve(newRouter(t, store), http.MethodOptions, "/village-data")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, store.village)
}

func TestViewFile(t *testing.T) {
	h := newRouter(t, &fakeStore{})

	w := serve(h, http.MethodGet, "/files/24530361")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 24530361.0, body["file_id"])
	assert.Equal(t, "Viewing file with ID: 24530361", body["message"])

	w = serve(h, http.MethodGet, "/files/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	w := serve(newRouter(t, &fakeStore{}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(newRouter(t, &fakeStore{err: database.ErrUnavailable}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPages(t *testing.T) {
	h := newRouter(t, &fakeStore{})

	for _, path := range []string{"/", "/others", "/browse/taluk", "/browse/village"} {
		w := serve(h, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}

	w := serve(h, http.MethodGet, "/static/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "// app", w.Body.String())
}

func TestBrowse_FallsBackToPlaceholders(t *testing.T) {
	w := serve(newRouter(t, &fakeStore{err: database.ErrUnavailable}), http.MethodGet, "/browse/taluk")

	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, loadFailed)
	assert.Contains(t, html, "RRT(DIS) CR 259/1999-00")
}

func TestBrowse_CascadeFromForm(t *testing.T) {
	store := &fakeStore{}
	h := newRouter(t, store)

	// The district changed while taluk and hobli were still selected.
	target := "/browse/village?district=20&taluk=9&hobli=1" +
		"&prev_district=19&prev_taluk=9&prev_hobli=1&prev_page=3&prev_limit=50&page=3&limit=50"
	w := serve(h, http.MethodGet, target)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, store.village, 1)
	q := store.village[0]
	assert.Equal(t, 20, q.District)
	assert.Zero(t, q.Taluk)
	assert.Zero(t, q.Hobli)
	assert.Equal(t, 1, q.Page)
}
