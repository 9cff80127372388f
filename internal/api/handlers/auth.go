package handlers

import (
	"errors"
	"net/http"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/service"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// AuthHandler is the gateway between HTTP and the credential store plus
// token service.
type AuthHandler struct {
	credentials *service.CredentialService
	tokens      *service.TokenService
	logger      *zap.SugaredLogger
}

func NewAuthHandler(credentials *service.CredentialService, tokens *service.TokenService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("invalid request body")))
		return
	}

	_, err := h.credentials.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			render.Render(w, r, &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: "Username already exists"})
		case errors.As(err, &vErr):
			render.Render(w, r, ErrInvalidRequest(vErr))
		default:
			h.logger.Errorw("register failed", "error", err)
			render.Render(w, r, ErrInternal(err))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &MessageResponse{Message: "User created successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("invalid request body")))
		return
	}

	user, err := h.credentials.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			render.Render(w, r, ErrUnauthorized("Invalid credentials"))
			return
		}
		h.logger.Errorw("login failed", "error", err)
		render.Render(w, r, ErrInternal(err))
		return
	}

	session, err := h.tokens.IssueSession(r.Context(), user)
	if err != nil {
		h.logger.Errorw("session issue failed", "error", err, "userId", user.ID)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.Render(w, r, &LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         NewUserResponse(user),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("invalid request body")))
		return
	}

	if req.RefreshToken == "" {
		render.Render(w, r, ErrUnauthorized("Refresh token required"))
		return
	}

	accessToken, err := h.tokens.RotateAccess(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			render.Render(w, r, ErrForbidden("Invalid refresh token"))
			return
		}
		h.logger.Errorw("refresh failed", "error", err)
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.Render(w, r, &RefreshResponse{AccessToken: accessToken})
}
