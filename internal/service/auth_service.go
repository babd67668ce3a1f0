package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
)

// ── auth module errors ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles login, logout and the current-user lookup.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService builds the AuthService. rdb may be nil, in which case
// logout cannot revoke tokens and only logs a warning.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("look up user by email", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("sign token", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TokenTTL().Seconds()),
		User:      *toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("redis unavailable, token cannot be revoked", zap.String("jti", jti))
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("look up user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}
