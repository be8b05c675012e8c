package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hszk-dev/vidcatalog/internal/api/middleware"
	"github.com/hszk-dev/vidcatalog/internal/usecase"
)

type LikeStateResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type AddCommentRequest struct {
	Username string `json:"username" validate:"max=50"`
	Content  string `json:"content" validate:"required,max=1000"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// InteractionHandler serves likes and comments.
type InteractionHandler struct {
	svc      usecase.InteractionService
	validate *validator.Validate
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(svc usecase.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// videoKeyParam decodes the {key} path segment; keys can contain slashes
// and so arrive URL-encoded.
func videoKeyParam(r *http.Request) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// GetLikes handles GET /v1/videos/{key}/likes
func (h *InteractionHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	state, err := h.svc.GetLikeState(r.Context(), key, middleware.GetVisitorID(r.Context()))
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, LikeStateResponse{Liked: state.Liked, Count: state.Count})
}

// ToggleLike handles POST /v1/videos/{key}/likes
func (h *InteractionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	state, err := h.svc.ToggleLike(r.Context(), key, middleware.GetVisitorID(r.Context()))
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, LikeStateResponse{Liked: state.Liked, Count: state.Count})
}

// ListComments handles GET /v1/videos/{key}/comments
func (h *InteractionHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	limit, okLimit := parseIntParam(r, "limit", 0)
	offset, okOffset := parseIntParam(r, "offset", 0)
	if !okLimit || !okOffset {
		Error(w, http.StatusBadRequest, "invalid_paging", "limit and offset must be integers")
		return
	}

	page, err := h.svc.ListComments(r.Context(), key, limit, offset)
	if err != nil {
		ServiceError(w, err)
		return
	}

	comments := make([]CommentResponse, 0, len(page.Comments))
	for _, c := range page.Comments {
		comments = append(comments, CommentResponse{
			ID:        c.ID,
			Username:  c.Username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	JSON(w, http.StatusOK, ListCommentsResponse{Comments: comments, Total: page.Total})
}

// AddComment handles POST /v1/videos/{key}/comments
func (h *InteractionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_comment", err.Error())
		return
	}

	comment, err := h.svc.AddComment(r.Context(), key, middleware.GetVisitorID(r.Context()), req.Username, req.Content)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func parseIntParam(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
