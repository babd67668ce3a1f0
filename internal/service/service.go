package service

import (
	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth  AuthService
	User  UserService
	Entry EntryService
	Stats StatsService
}

// NewService wires the service implementations.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	dispatcher notify.Dispatcher,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:  NewAuthService(repo, jwtMgr, rdb, logger),
		User:  NewUserService(repo, logger),
		Entry: NewEntryService(repo, dispatcher, logger),
		Stats: NewStatsService(cfg, repo, rdb, logger),
	}
}
