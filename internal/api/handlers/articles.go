package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	articles *service.ArticleService
	logger   *zap.SugaredLogger
}

func NewArticleHandler(articles *service.ArticleService, logger *zap.SugaredLogger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   logger,
	}
}

type CreateArticleRequest struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Body     string `json:"article_text"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Featured bool   `json:"featured"`
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("invalid request body")))
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(errors.New("date must be RFC3339")))
			return
		}
		date = &parsed
	}

	article, err := h.articles.Create(r.Context(), service.CreateArticleInput{
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
		Date:     date,
		Image:    req.Image,
		Category: domain.Category(req.Category),
		Featured: req.Featured,
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			render.Render(w, r, ErrInvalidRequest(vErr))
		case errors.Is(err, domain.ErrDuplicateFingerprint):
			render.Render(w, r, ErrConflict(err))
		default:
			h.logger.Errorw("article create failed", "error", err)
			render.Render(w, r, ErrInternal(err))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, NewArticleResponse(article))
}

func (h *ArticleHandler) Latest(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListLatest(r.Context(), limitParam(r))
	if err != nil {
		h.logger.Errorw("latest articles fetch failed", "error", err)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.RenderList(w, r, NewArticleListResponse(articles))
}

func (h *ArticleHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(chi.URLParam(r, "category"))
	if !category.IsValid() {
		render.Render(w, r, ErrInvalidRequest(errors.New("category must be Political or General")))
		return
	}

	articles, err := h.articles.ListByCategory(r.Context(), category, limitParam(r))
	if err != nil {
		h.logger.Errorw("category articles fetch failed", "error", err, "category", category)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.RenderList(w, r, NewArticleListResponse(articles))
}

func (h *ArticleHandler) Featured(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListFeatured(r.Context(), limitParam(r))
	if err != nil {
		h.logger.Errorw("featured articles fetch failed", "error", err)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.RenderList(w, r, NewArticleListResponse(articles))
}

func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	article, err := h.articles.GetByID(r.Context(), articleID)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			render.Render(w, r, ErrNotFound("Article not found"))
			return
		}
		h.logger.Errorw("article fetch failed", "error", err, "articleId", articleID)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.Render(w, r, NewArticleResponse(article))
}

// limitParam parses ?limit=N, returning 0 when absent or malformed so the
// service applies its default.
func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
