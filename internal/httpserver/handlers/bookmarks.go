package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/httpserver/mw"
	"github.com/marqlabs/marq/internal/logger"
)

type createBookmarkRequest struct {
	URL string `json:"url"`
}

type listBookmarksResponse struct {
	Bookmarks      []*domain.Bookmark `json:"bookmarks"`
	CurrentPage    int                `json:"currentPage"`
	TotalPages     int                `json:"totalPages"`
	TotalBookmarks int64              `json:"totalBookmarks"`
}

type reorderRequest struct {
	Bookmarks []string `json:"bookmarks"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CreateBookmark enriches and stores a submitted URL.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := mw.OwnerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}

		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		bookmark, err := d.Bookmarks.Create(r.Context(), owner, req.URL)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				writeError(w, http.StatusBadRequest, "This URL is already bookmarked")
				return
			}
			d.Logger.Error("bookmark creation failed",
				logger.String("url", req.URL),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		writeJSON(w, http.StatusCreated, bookmark)
	}
}

// ListBookmarks answers one page of the owner's bookmarks.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := mw.OwnerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}

		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)

		result, err := d.Bookmarks.List(r.Context(), owner, page, limit)
		if err != nil {
			d.Logger.Error("bookmark listing failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		writeJSON(w, http.StatusOK, listBookmarksResponse{
			Bookmarks:      result.Bookmarks,
			CurrentPage:    result.CurrentPage,
			TotalPages:     result.TotalPages,
			TotalBookmarks: result.TotalCount,
		})
	}
}

// DeleteBookmark removes a bookmark and compacts the owner's orders.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := mw.OwnerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Bookmark not found")
			return
		}

		if err := d.Bookmarks.Delete(r.Context(), owner, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Bookmark not found")
				return
			}
			d.Logger.Error("bookmark deletion failed",
				logger.String("id", id.Hex()),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "Bookmark deleted"})
	}
}

// ReorderBookmarks rewrites orders to match the submitted ID list.
func ReorderBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := mw.OwnerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}

		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ids := make([]primitive.ObjectID, 0, len(req.Bookmarks))
		for _, raw := range req.Bookmarks {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid bookmark id")
				return
			}
			ids = append(ids, id)
		}

		if err := d.Bookmarks.Reorder(r.Context(), owner, ids); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Bookmark not found")
				return
			}
			d.Logger.Error("bookmark reorder failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "Bookmark order updated"})
	}
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
