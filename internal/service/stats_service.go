package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
)

const statsCacheKey = "stats:today"

// StatsService is the read-only reporting surface. It never mutates
// entry records.
type StatsService interface {
	DailyStats(ctx context.Context) (*dto.DailyStatsResponse, error)
}

type statsService struct {
	repo     *repository.Repository
	rdb      *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService builds the StatsService. rdb may be nil; stats are
// then computed on every request.
func NewStatsService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) StatsService {
	return &statsService{
		repo:     repo,
		rdb:      rdb,
		cacheTTL: cfg.Stats.CacheTTL,
		logger:   logger,
	}
}

// DailyStats aggregates today's numbers for both kinds. The result is
// cached briefly; cache failures are ignored, never surfaced.
func (s *statsService) DailyStats(ctx context.Context) (*dto.DailyStatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.CacheGet(ctx, statsCacheKey); err == nil && cached != "" {
			var resp dto.DailyStatsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	from, to := todayWindow(time.Now())

	visitors, err := s.kindStats(ctx, model.KindVisitor, from, to)
	if err != nil {
		return nil, err
	}
	students, err := s.kindStats(ctx, model.KindStudent, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.DailyStatsResponse{Visitors: *visitors, Students: *students}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.CacheSet(ctx, statsCacheKey, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("cache daily stats", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *statsService) kindStats(ctx context.Context, kind model.EntryKind, from, to time.Time) (*dto.KindStats, error) {
	totalToday, err := s.repo.Entry.CountEnteredBetween(ctx, kind, from, to)
	if err != nil {
		s.logger.Error("count entered today", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	exitedToday, err := s.repo.Entry.CountExitedBetween(ctx, kind, from, to)
	if err != nil {
		s.logger.Error("count exited today", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.Entry.CountPending(ctx, kind)
	if err != nil {
		s.logger.Error("count pending", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	approved, err := s.repo.Entry.CountApproved(ctx, kind)
	if err != nil {
		s.logger.Error("count approved", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	inside, err := s.repo.Entry.CountInside(ctx, kind)
	if err != nil {
		s.logger.Error("count inside", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}

	return &dto.KindStats{
		TotalToday:        totalToday,
		ExitedToday:       exitedToday,
		PendingApproval:   pending,
		ApprovedNotExited: approved,
		CurrentlyInside:   inside,
	}, nil
}
