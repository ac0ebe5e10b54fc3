package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/bookmarks"
	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/enrich"
	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/httpserver/mw"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store/memory"
)

type stubEnricher struct{}

func (stubEnricher) Enrich(_ context.Context, rawURL string) enrich.Result {
	return enrich.Result{
		Title:   "Stub Title",
		Favicon: "https://example.com/favicon.ico",
		Summary: "Stub summary.",
		Tags:    []string{"stub"},
	}
}

func newBookmarkDeps() (deps.Deps, *memory.Bookmarks) {
	st := memory.NewBookmarks()
	svc := bookmarks.NewService(st, stubEnricher{}, logger.Nop())
	return deps.Deps{
		Logger:    logger.Nop(),
		Bookmarks: svc,
	}, st
}

// newBookmarkRouter mounts the bookmark handlers the way the real
// routes do, with the owner identity pre-injected.
func newBookmarkRouter(d deps.Deps, owner primitive.ObjectID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(mw.WithOwner(req.Context(), owner)))
		})
	})
	r.Post("/api/bookmarks", CreateBookmark(d))
	r.Get("/api/bookmarks", ListBookmarks(d))
	r.Put("/api/bookmarks/reorder", ReorderBookmarks(d))
	r.Delete("/api/bookmarks/{id}", DeleteBookmark(d))
	return r
}

func TestCreateBookmarkHandler(t *testing.T) {
	owner := primitive.NewObjectID()
	d, _ := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks",
		strings.NewReader(`{"url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var b domain.Bookmark
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if b.URL != "https://example.com" {
		t.Errorf("url = %q, want https://example.com", b.URL)
	}
	if b.Title != "Stub Title" {
		t.Errorf("title = %q, want Stub Title", b.Title)
	}
	if b.Order != 0 {
		t.Errorf("order = %d, want 0", b.Order)
	}
}

func TestCreateBookmarkHandlerRejections(t *testing.T) {
	owner := primitive.NewObjectID()
	d, _ := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	// seed one bookmark so the duplicate case can trigger
	seed := httptest.NewRequest(http.MethodPost, "/api/bookmarks",
		strings.NewReader(`{"url":"https://example.com"}`))
	router.ServeHTTP(httptest.NewRecorder(), seed)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "duplicate url",
			body:        `{"url":"https://example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "This URL is already bookmarked",
		},
		{
			name:        "missing url",
			body:        `{}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "url is required",
		},
		{
			name:        "malformed json",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/bookmarks", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp messageResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestListBookmarksHandler(t *testing.T) {
	owner := primitive.NewObjectID()
	d, _ := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	for _, u := range urls {
		req := httptest.NewRequest(http.MethodPost, "/api/bookmarks",
			strings.NewReader(`{"url":"`+u+`"}`))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks?page=1&limit=2", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp listBookmarksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Bookmarks) != 2 {
		t.Errorf("len(bookmarks) = %d, want 2", len(resp.Bookmarks))
	}
	if resp.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1", resp.CurrentPage)
	}
	if resp.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", resp.TotalPages)
	}
	if resp.TotalBookmarks != 3 {
		t.Errorf("totalBookmarks = %d, want 3", resp.TotalBookmarks)
	}
	if resp.Bookmarks[0].URL != "https://a.example" {
		t.Errorf("first bookmark = %q, want https://a.example", resp.Bookmarks[0].URL)
	}
}

func TestDeleteBookmarkHandler(t *testing.T) {
	owner := primitive.NewObjectID()
	d, st := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	create := httptest.NewRequest(http.MethodPost, "/api/bookmarks",
		strings.NewReader(`{"url":"https://example.com"}`))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, create)

	var b domain.Bookmark
	if err := json.Unmarshal(createRec.Body.Bytes(), &b); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/bookmarks/"+b.ID.Hex(), http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	count, _ := st.CountByOwner(context.Background(), owner)
	if count != 0 {
		t.Errorf("stored bookmarks = %d, want 0", count)
	}
}

func TestDeleteBookmarkHandlerNotFound(t *testing.T) {
	owner := primitive.NewObjectID()
	d, _ := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	tests := []struct {
		name string
		id   string
	}{
		{name: "unknown id", id: primitive.NewObjectID().Hex()},
		{name: "malformed id", id: "not-a-hex-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/bookmarks/"+tt.id, http.NoBody)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
		})
	}
}

func TestReorderBookmarksHandler(t *testing.T) {
	owner := primitive.NewObjectID()
	d, st := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	var ids []string
	for _, u := range []string{"https://a.example", "https://b.example"} {
		req := httptest.NewRequest(http.MethodPost, "/api/bookmarks",
			strings.NewReader(`{"url":"`+u+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var b domain.Bookmark
		if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
			t.Fatalf("failed to decode create response: %v", err)
		}
		ids = append(ids, b.ID.Hex())
	}

	body := `{"bookmarks":["` + ids[1] + `","` + ids[0] + `"]}`
	req := httptest.NewRequest(http.MethodPut, "/api/bookmarks/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	got, err := st.FindByOwner(context.Background(), owner, 0, 0)
	if err != nil {
		t.Fatalf("FindByOwner() error = %v", err)
	}
	if got[0].URL != "https://b.example" || got[1].URL != "https://a.example" {
		t.Errorf("order after reorder = [%q %q], want [https://b.example https://a.example]",
			got[0].URL, got[1].URL)
	}
}

func TestReorderBookmarksHandlerBadID(t *testing.T) {
	owner := primitive.NewObjectID()
	d, _ := newBookmarkDeps()
	router := newBookmarkRouter(d, owner)

	req := httptest.NewRequest(http.MethodPut, "/api/bookmarks/reorder",
		strings.NewReader(`{"bookmarks":["nope"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBookmarkHandlersRequireOwner(t *testing.T) {
	d, _ := newBookmarkDeps()

	// no owner in context: every bookmark handler answers 401
	handlers := map[string]http.HandlerFunc{
		"create":  CreateBookmark(d),
		"list":    ListBookmarks(d),
		"delete":  DeleteBookmark(d),
		"reorder": ReorderBookmarks(d),
	}

	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
