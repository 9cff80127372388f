package postgres

import (
	"context"

	"github.com/amehta/pressroom/internal/domain"
	"gorm.io/gorm"
)

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *articleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	err := r.db.WithContext(ctx).Create(article).Error
	switch {
	case isUniqueViolation(err, "idx_articles_fingerprint"):
		return domain.ErrDuplicateFingerprint
	case isUniqueViolation(err, "idx_articles_article_id"):
		return domain.ErrDuplicateArticleID
	}
	return err
}

// NextArticleID resolves the next sequential id by reading the current
// maximum. Two concurrent callers can observe the same maximum; the unique
// index on article_id turns that race into ErrDuplicateArticleID on Create.
func (r *articleRepository) NextArticleID(ctx context.Context) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&domain.Article{}).
		Select("COALESCE(MAX(article_id), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *articleRepository) ListLatest(ctx context.Context, limit int) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListByCategory(ctx context.Context, category domain.Category, limit int) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("date DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("date DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) GetByArticleID(ctx context.Context, articleID int) (*domain.Article, error) {
	var article domain.Article
	err := r.db.WithContext(ctx).First(&article, "article_id = ?", articleID).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}
