package service

import (
	"context"
	"errors"
	"time"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultListLimit     = 10
	DefaultFeaturedLimit = 3
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
}

func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

type CreateArticleInput struct {
	Title    string
	Summary  string
	Body     string
	Date     *time.Time
	Image    string
	Category domain.Category
	Featured bool
}

// Create validates the input, defaults the publish date, derives the dedup
// fingerprint and assigns the next sequential id before persisting.
//
// Id assignment reads the current maximum and adds one, so two concurrent
// creations can race onto the same id. The unique index catches that as
// ErrDuplicateArticleID and we re-resolve the id once before giving up.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error) {
	if err := validateArticle(input); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	fingerprint := domain.ArticleFingerprint(input.Title, date)

	for attempt := 0; ; attempt++ {
		nextID, err := s.articleRepo.NextArticleID(ctx)
		if err != nil {
			return nil, err
		}

		article := &domain.Article{
			ID:          uuid.New(),
			ArticleID:   nextID,
			Fingerprint: fingerprint,
			Title:       input.Title,
			Summary:     input.Summary,
			Body:        input.Body,
			Date:        date,
			Image:       input.Image,
			Category:    input.Category,
			Featured:    input.Featured,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		err = s.articleRepo.Create(ctx, article)
		if errors.Is(err, domain.ErrDuplicateArticleID) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, err
		}
		return article, nil
	}
}

func validateArticle(input CreateArticleInput) error {
	if input.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if input.Summary == "" {
		return domain.NewValidationError("summary", "is required")
	}
	if input.Body == "" {
		return domain.NewValidationError("article_text", "is required")
	}
	if input.Image == "" {
		return domain.NewValidationError("image", "is required")
	}
	if !input.Category.IsValid() {
		return domain.NewValidationError("category", "must be Political or General")
	}
	return nil
}

func (s *ArticleService) ListLatest(ctx context.Context, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.articleRepo.ListLatest(ctx, limit)
}

func (s *ArticleService) ListByCategory(ctx context.Context, category domain.Category, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.articleRepo.ListByCategory(ctx, category, limit)
}

func (s *ArticleService) ListFeatured(ctx context.Context, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.articleRepo.ListFeatured(ctx, limit)
}

func (s *ArticleService) GetByID(ctx context.Context, articleID int) (*domain.Article, error) {
	article, err := s.articleRepo.GetByArticleID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}
