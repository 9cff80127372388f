package service

import (
	"context"
	"errors"
	"time"

	"github.com/amehta/pressroom/internal/config"
	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenService issues, verifies and rotates the access/refresh token pair.
// Access and refresh tokens are signed with separate secrets; the current
// refresh token is persisted on the user row, so overwriting it revokes
// every previously issued refresh token even before expiry.
type TokenService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	logger   *zap.SugaredLogger
}

func NewTokenService(userRepo repository.UserRepository, cfg *config.Config, logger *zap.SugaredLogger) *TokenService {
	return &TokenService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Session is an issued access/refresh token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// AccessClaims are the public identity claims carried by an access token.
type AccessClaims struct {
	UserID   uuid.UUID
	Username string
	Role     domain.Role
}

func (s *TokenService) IssueSession(ctx context.Context, user *domain.User) (*Session, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signRefreshToken(user)
	if err != nil {
		return nil, err
	}

	// Last-writer-wins on purpose: the previous refresh token stops
	// matching the stored value and is thereby revoked.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccess validates the signature and expiry of an access token and
// checks that the referenced user still exists. All failure modes surface
// as ErrInvalidToken; the cause is only logged.
func (s *TokenService) VerifyAccess(ctx context.Context, tokenString string) (*AccessClaims, error) {
	claims, err := s.parseToken(tokenString, s.cfg.JWTSecret)
	if err != nil {
		s.logger.Debugw("access token rejected", "reason", err)
		return nil, domain.ErrInvalidToken
	}

	userID, username, role, err := identityClaims(claims)
	if err != nil {
		s.logger.Debugw("access token rejected", "reason", err)
		return nil, domain.ErrInvalidToken
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debugw("access token rejected", "reason", "user no longer exists", "userId", userID)
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return &AccessClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}

// RotateAccess exchanges a refresh token for a new access token. The
// presented token must verify against the refresh secret and be exactly
// the one stored on the user record; expired, tampered, unknown-user and
// mismatched tokens all fail with ErrInvalidRefreshToken.
func (s *TokenService) RotateAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		s.logger.Debugw("refresh token rejected", "reason", err)
		return "", domain.ErrInvalidRefreshToken
	}

	idStr, ok := claims["id"].(string)
	if !ok {
		s.logger.Debugw("refresh token rejected", "reason", "missing id claim")
		return "", domain.ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		s.logger.Debugw("refresh token rejected", "reason", "malformed id claim")
		return "", domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debugw("refresh token rejected", "reason", "user no longer exists", "userId", userID)
			return "", domain.ErrInvalidRefreshToken
		}
		return "", err
	}

	// Exact equality with the stored token is the revocation mechanism:
	// anything issued before the stored value was overwritten no longer
	// matches, even if its signature and expiry are still valid.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		s.logger.Debugw("refresh token rejected", "reason", "stored token mismatch", "userId", userID)
		return "", domain.ErrInvalidRefreshToken
	}

	return s.signAccessToken(user)
}

func (s *TokenService) signAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"username": user.Username,
		"role":     user.Role.String(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *TokenService) signRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	// jti keeps two sessions issued within the same second from producing
	// identical tokens, which would defeat stored-token revocation.
	claims := jwt.MapClaims{
		"id":  user.ID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.RefreshTokenSecret))
}

func (s *TokenService) parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func identityClaims(claims jwt.MapClaims) (uuid.UUID, string, domain.Role, error) {
	idStr, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, "", "", errors.New("missing id claim")
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", "", errors.New("malformed id claim")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return uuid.Nil, "", "", errors.New("missing username claim")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, "", "", errors.New("missing role claim")
	}

	return userID, username, domain.Role(roleStr), nil
}
