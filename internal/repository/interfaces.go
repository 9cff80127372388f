package repository

import (
	"context"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	NextArticleID(ctx context.Context) (int, error)
	ListLatest(ctx context.Context, limit int) ([]*domain.Article, error)
	ListByCategory(ctx context.Context, category domain.Category, limit int) ([]*domain.Article, error)
	ListFeatured(ctx context.Context, limit int) ([]*domain.Article, error)
	GetByArticleID(ctx context.Context, articleID int) (*domain.Article, error)
}

type Repositories struct {
	User    UserRepository
	Article ArticleRepository
}
