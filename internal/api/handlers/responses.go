package handlers

import (
	"net/http"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/go-chi/render"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func (rd *MessageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role.String(),
	}
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func (rd *LoginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func (rd *RefreshResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleResponse is the response payload for a single article.
type ArticleResponse struct {
	*domain.Article
}

func NewArticleResponse(article *domain.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []*domain.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}
	return list
}
