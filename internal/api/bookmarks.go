package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/joe-bookmarks/internal/bookmark"
	"github.com/joestump/joe-bookmarks/internal/logger"
	"github.com/joestump/joe-bookmarks/internal/metrics"
	"github.com/joestump/joe-bookmarks/internal/store"
)

const maxBodyBytes = 1 << 20

// bookmarksAPIHandler provides REST handlers for the bookmark collection.
type bookmarksAPIHandler struct {
	bookmarks store.BookmarkStoreIface
	log       logger.Logger
	dev       bool
}

// registerBookmarkRoutes registers bookmark routes on r.
func registerBookmarkRoutes(r chi.Router, h *bookmarksAPIHandler) {
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Patch("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// List returns every bookmark.
// GET /api/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns all bookmarks in insertion order. Title and description are sanitized.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   bookmark.View
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bms, err := h.bookmarks.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	metrics.RecordOp("list", metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, bookmark.SerializeAll(bms))
}

// Create validates and stores a new bookmark.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  title, url and rating are required; rating must be an integer from 0 to 5.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      bookmark.Input  true  "Bookmark to create"
// @Success      201   {object}  bookmark.View
// @Header       201   {string}  Location  "URL of the new bookmark"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r, "create")
	if !ok {
		return
	}

	draft, err := bookmark.ValidateCreate(in)
	if err != nil {
		h.reject(w, "create", err)
		return
	}

	b, err := h.bookmarks.Insert(r.Context(), draft)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	h.log.Info("bookmark created", logger.String("id", b.ID))
	metrics.RecordOp("create", metrics.OutcomeOK)
	w.Header().Set("Location", path.Join(r.URL.Path, b.ID))
	writeJSON(w, http.StatusCreated, bookmark.Serialize(b))
}

// Get returns a single bookmark by ID.
// GET /api/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  bookmark.View
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r, "get", msgBookmarkDoesNotExist)
	if !ok {
		return
	}
	metrics.RecordOp("get", metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, bookmark.Serialize(b))
}

// Update applies a sparse patch: only non-empty fields in the body overwrite
// the stored bookmark.
// PATCH /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Fields that are absent or empty keep their stored value. At least one field is required.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path  string          true  "Bookmark ID"
// @Param        body  body  bookmark.Input  true  "Fields to change"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r, "update")
	if !ok {
		return
	}
	patch, err := bookmark.ValidateUpdate(in)
	if err != nil {
		h.reject(w, "update", err)
		return
	}

	b, ok := h.lookup(w, r, "update", msgBookmarkDoesNotExist)
	if !ok {
		return
	}

	if _, err := h.bookmarks.Update(r.Context(), b.ID, patch); err != nil {
		// Deleted between lookup and update.
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordOp("update", metrics.OutcomeNotFound)
			writeError(w, http.StatusNotFound, msgBookmarkDoesNotExist)
			return
		}
		h.fail(w, r, "update", err)
		return
	}

	h.log.Info("bookmark updated", logger.String("id", b.ID))
	metrics.RecordOp("update", metrics.OutcomeOK)
	w.WriteHeader(http.StatusNoContent)
}

// Delete permanently removes a bookmark.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id   path  string  true  "Bookmark ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r, "delete", msgBookmarkNotFound)
	if !ok {
		return
	}

	if _, err := h.bookmarks.Delete(r.Context(), b.ID); err != nil {
		h.fail(w, r, "delete", err)
		return
	}

	h.log.Info("bookmark deleted", logger.String("id", b.ID))
	metrics.RecordOp("delete", metrics.OutcomeOK)
	w.WriteHeader(http.StatusNoContent)
}

// lookup loads the bookmark named by the {id} URL parameter. On a miss it
// writes a 404 carrying notFoundMsg and returns ok=false; the caller must
// then return without writing.
func (h *bookmarksAPIHandler) lookup(w http.ResponseWriter, r *http.Request, op, notFoundMsg string) (*bookmark.Bookmark, bool) {
	id := chi.URLParam(r, "id")
	b, err := h.bookmarks.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.log.Error("bookmark not found", logger.String("id", id), logger.String("op", op))
		metrics.RecordOp(op, metrics.OutcomeNotFound)
		writeError(w, http.StatusNotFound, notFoundMsg)
		return nil, false
	}
	if err != nil {
		h.fail(w, r, op, err)
		return nil, false
	}
	return b, true
}

// decode reads the JSON body. An empty body decodes to an empty Input so
// that validation, not parsing, reports what is missing.
func (h *bookmarksAPIHandler) decode(w http.ResponseWriter, r *http.Request, op string) (bookmark.Input, bool) {
	var in bookmark.Input
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
	if err != nil && !errors.Is(err, io.EOF) {
		metrics.RecordOp(op, metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return bookmark.Input{}, false
	}
	return in, true
}

// reject reports a validation failure with its specific message.
func (h *bookmarksAPIHandler) reject(w http.ResponseWriter, op string, err error) {
	h.log.Error("bookmark rejected", logger.String("op", op), logger.Error(err))
	metrics.RecordOp(op, metrics.OutcomeInvalid)
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *bookmarksAPIHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.RecordOp(op, metrics.OutcomeError)
	ServerError(w, r, h.log, h.dev, err)
}
