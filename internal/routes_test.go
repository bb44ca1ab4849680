package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"weddingsite/internal/controllers"
	"weddingsite/internal/providers"
	"weddingsite/internal/services"
	"weddingsite/internal/storage"
	"weddingsite/internal/structures"
	"weddingsite/internal/testutil"
	"weddingsite/internal/uploads"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type siteFixture struct {
	conf    *structures.Config
	store   *storage.FileStore
	handler http.Handler
	metrics *testutil.MockMetrics
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	conf := testutil.NewConfig(t.TempDir())
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()

	require.NoError(t, os.MkdirAll(conf.Site.PublicDir, 0755))
	for name, body := range map[string]string{
		"index.html": "<h1>index</h1>",
		"rsvp.html":  "<h1>rsvp</h1>",
		"admin.html": "<h1>admin</h1>",
		"style.css":  "body{}",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(conf.Site.PublicDir, name), []byte(body), 0644))
	}

	store, err := storage.NewFileStore(conf, logger, metrics, testutil.NewMockCache(), noBackup{})
	require.NoError(t, err)
	manager, err := uploads.NewManager(conf, logger, metrics)
	require.NoError(t, err)

	api := controllers.NewApiController(logger)
	handlers := &Handlers{
		RSVP:     controllers.NewRSVPController(api, services.NewRSVPService(store, conf, logger)),
		Playlist: controllers.NewPlaylistController(api, services.NewPlaylistService(store, conf, logger)),
		Gallery:  controllers.NewGalleryController(api, services.NewGalleryService(store, manager, conf, logger), conf),
		Wishlist: controllers.NewWishlistController(api, services.NewWishlistService(store, logger)),
		Links:    controllers.NewLinksController(api, services.NewLinksService(store, manager, logger), conf),
		Pages:    controllers.NewPagesController(api, conf),
	}
	router := InitRoutes(handlers, providers.NewAuthProvider(conf, logger), conf)
	app := NewApp(controllers.NewHealthController(api), conf, logger, router, metrics)

	return &siteFixture{conf: conf, store: store, handler: app.WebServer.Handler, metrics: metrics}
}

type noBackup struct{}

func (noBackup) Snapshot(_ string, _ []byte) error { return nil }
func (noBackup) Restore(_ string) ([]byte, error)  { return nil, storage.ErrNoBackup }

func (f *siteFixture) do(method, target string, body io.Reader, admin bool, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if admin {
		req.SetBasicAuth(f.conf.Admin.User, f.conf.Admin.Password)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_AdminEndpointsRequireAuth(t *testing.T) {
	f := newSiteFixture(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/rsvp/all"},
		{http.MethodGet, "/api/wishlist/all"},
		{http.MethodPost, "/api/wishlist"},
		{http.MethodPut, "/api/wishlist/1"},
		{http.MethodDelete, "/api/wishlist/1"},
		{http.MethodDelete, "/api/gallery/1"},
		{http.MethodPost, "/api/gallery/upload/admin"},
		{http.MethodGet, "/api/links/all"},
		{http.MethodPut, "/api/links"},
		{http.MethodPatch, "/api/links/0"},
		{http.MethodPost, "/api/profile/upload"},
		{http.MethodGet, "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := f.do(tt.method, tt.target, nil, false, "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRoutes_PublicReads(t *testing.T) {
	f := newSiteFixture(t)

	for _, target := range []string{"/api/rsvp/stats", "/api/playlist", "/api/gallery", "/api/wishlist", "/api/links", "/health"} {
		rr := f.do(http.MethodGet, target, nil, false, "")
		assert.Equal(t, http.StatusOK, rr.Code, target)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), target)
	}
}

func TestRoutes_DemoRSVPDoesNotPersist(t *testing.T) {
	f := newSiteFixture(t)

	f.do(http.MethodGet, "/api/rsvp/stats", nil, false, "")
	before, err := os.ReadFile(f.store.Path(storage.KeyRSVP))
	require.NoError(t, err)

	body := `{"name":"Anna","email":"anna@example.com","guests":2,"attendance":"yes"}`
	rr := f.do(http.MethodPost, "/api/rsvp", strings.NewReader(body), false, "application/json")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		Stats  struct {
			Total       int `json:"total"`
			TotalGuests int `json:"totalGuests"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, 2, resp.Stats.TotalGuests)

	after, err := os.ReadFile(f.store.Path(storage.KeyRSVP))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRoutes_RSVPValidation(t *testing.T) {
	f := newSiteFixture(t)

	rr := f.do(http.MethodPost, "/api/rsvp", strings.NewReader(`{"name":"Anna"}`), false, "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(http.MethodPost, "/api/rsvp", strings.NewReader(`not json`), false, "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_WishlistAdminFlow(t *testing.T) {
	f := newSiteFixture(t)

	rr := f.do(http.MethodPost, "/api/wishlist", strings.NewReader(`{"title":"Hammock","visible":false}`), true, "application/json")
	require.Equal(t, http.StatusOK, rr.Code)
	var created struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.Item.ID)

	assert.NotContains(t, f.do(http.MethodGet, "/api/wishlist", nil, false, "").Body.String(), "Hammock")
	assert.Contains(t, f.do(http.MethodGet, "/api/wishlist/all", nil, true, "").Body.String(), "Hammock")

	rr = f.do(http.MethodPut, "/api/wishlist/"+created.Item.ID, strings.NewReader(`{"visible":true}`), true, "application/json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, f.do(http.MethodGet, "/api/wishlist", nil, false, "").Body.String(), "Hammock")

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/api/wishlist/"+created.Item.ID, nil, true, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/wishlist/"+created.Item.ID, nil, true, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPut, "/api/wishlist/nope", strings.NewReader(`{}`), true, "application/json").Code)
}

func TestRoutes_LinksPatchIndex(t *testing.T) {
	f := newSiteFixture(t)

	rr := f.do(http.MethodPatch, "/api/links/abc", strings.NewReader(`{}`), true, "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid index")

	rr = f.do(http.MethodPatch, "/api/links/3", strings.NewReader(`{"title":"x"}`), true, "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid index")
}

func TestRoutes_GalleryAdminUploadAndDelete(t *testing.T) {
	f := newSiteFixture(t)

	body, contentType := testutil.MultipartBody(t, "photos",
		[]testutil.UploadFile{{Name: "rings.png", ContentType: "image/png", Content: testutil.PNG}},
		map[string]string{"description": "the rings"})
	rr := f.do(http.MethodPost, "/api/gallery/upload/admin", body, true, contentType)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Photos []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Photos, 1)
	assert.Equal(t, "/admin_uploads/rings.png", resp.Photos[0].URL)

	served := f.do(http.MethodGet, "/admin_uploads/rings.png", nil, false, "")
	assert.Equal(t, http.StatusOK, served.Code)

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/api/gallery/"+resp.Photos[0].ID, nil, true, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/admin_uploads/rings.png", nil, false, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/gallery/"+resp.Photos[0].ID, nil, true, "").Code)
}

func TestRoutes_GuestUploadRejectsNonImage(t *testing.T) {
	f := newSiteFixture(t)

	body, contentType := testutil.MultipartBody(t, "photos",
		[]testutil.UploadFile{{Name: "notes.txt", ContentType: "text/plain", Content: []byte("hi")}},
		map[string]string{"uploader": "Anna"})
	rr := f.do(http.MethodPost, "/api/gallery/upload", body, false, contentType)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "only image files are allowed")

	entries, err := os.ReadDir(f.conf.Uploads.GuestDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoutes_ProfileUpload(t *testing.T) {
	f := newSiteFixture(t)

	body, contentType := testutil.MultipartBody(t, "photo",
		[]testutil.UploadFile{{Name: "us.png", ContentType: "image/png", Content: testutil.PNG}}, nil)
	rr := f.do(http.MethodPost, "/api/profile/upload", body, true, contentType)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		URL    string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "/admin_uploads/us.png", resp.URL)
}

func TestRoutes_Pages(t *testing.T) {
	f := newSiteFixture(t)

	rr := f.do(http.MethodGet, "/", nil, false, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "index")

	rr = f.do(http.MethodGet, "/rsvp", nil, false, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "rsvp")

	rr = f.do(http.MethodGet, "/style.css", nil, false, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodGet, "/admin", nil, true, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin")
}

func TestRoutes_UnknownPathServesIndexWith404(t *testing.T) {
	f := newSiteFixture(t)

	for _, target := range []string{"/nope", "/admin.html", "/program"} {
		rr := f.do(http.MethodGet, target, nil, false, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
		assert.Contains(t, rr.Body.String(), "<h1>index</h1>", target)
	}
}

func TestRoutes_UploadRootsHaveNoListings(t *testing.T) {
	f := newSiteFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.conf.Uploads.GuestDir, "a.jpg"), testutil.PNG, 0644))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/guest_uploads/a.jpg", nil, false, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/guest_uploads/", nil, false, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/guest_uploads/missing.jpg", nil, false, "").Code)
}

func TestRoutes_MetricsLabelledByPattern(t *testing.T) {
	f := newSiteFixture(t)

	f.do(http.MethodDelete, "/api/wishlist/1", nil, true, "")
	assert.Contains(t, f.metrics.Requests, "DELETE /api/wishlist/{id}")
}

func TestRoutes_Analytics(t *testing.T) {
	f := newSiteFixture(t)

	body := `{"linkTitle":"RSVP","linkUrl":"/rsvp","timestamp":"2024-06-01T12:00:00Z"}`
	rr := f.do(http.MethodPost, "/api/analytics", strings.NewReader(body), false, "application/json")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success"}`, rr.Body.String())
}
