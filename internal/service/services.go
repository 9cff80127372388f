package service

import (
	"github.com/amehta/pressroom/internal/config"
	"github.com/amehta/pressroom/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Credentials *CredentialService
	Tokens      *TokenService
	Articles    *ArticleService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.SugaredLogger) *Services {
	return &Services{
		Credentials: NewCredentialService(repos.User),
		Tokens:      NewTokenService(repos.User, cfg, logger),
		Articles:    NewArticleService(repos.Article),
	}
}
