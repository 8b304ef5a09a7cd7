package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/pkg/logger"
)

const dashboardCacheKey = "nexo:admin:dashboard"

// DashboardCache stores the serialized dashboard. A nil cache disables caching.
type DashboardCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Dashboard struct {
	Statistics  repository.DashboardStats `json:"statistics"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Cached      bool                      `json:"-"`
}

type AdminService interface {
	Dashboard(ctx context.Context, actor *models.User) (*Dashboard, error)
}

type adminService struct {
	stats repository.StatsRepository
	cache DashboardCache
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

func NewAdminService(stats repository.StatsRepository, cache DashboardCache, ttl time.Duration, log *logger.Logger) AdminService {
	return &adminService{stats: stats, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (s *adminService) Dashboard(ctx context.Context, actor *models.User) (*Dashboard, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, dashboardCacheKey)
		switch {
		case err != nil:
			s.log.Warn("dashboard cache read failed", "error", err)
		case ok:
			var d Dashboard
			if err := json.Unmarshal(raw, &d); err == nil {
				d.Cached = true
				return &d, nil
			}
			s.log.Warn("dashboard cache entry corrupt, recomputing")
		}
	}

	stats, err := s.stats.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute dashboard: %w", err)
	}
	d := &Dashboard{Statistics: *stats, GeneratedAt: s.now().UTC()}

	if s.cache != nil {
		raw, err := json.Marshal(d)
		if err == nil {
			err = s.cache.Set(ctx, dashboardCacheKey, raw, s.ttl)
		}
		if err != nil {
			s.log.Warn("dashboard cache write failed", "error", err)
		}
	}

	return d, nil
}
