package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  []Service `json:"services"`
}

type Service struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker pings the database and, when configured, the board list cache.
type HealthChecker struct {
	DB     *gorm.DB
	DBName string
	Redis  *redis.Client
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	var services []Service
	overallStatus := StatusHealthy

	if h.DB != nil {
		service := h.ping(ctx, h.dbName(), func(ctx context.Context) error {
			sqlDB, err := h.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		if service.Status != "up" {
			overallStatus = StatusDegraded
		}
		services = append(services, service)
	}

	if h.Redis != nil {
		service := h.ping(ctx, "Redis", func(ctx context.Context) error {
			return h.Redis.Ping(ctx).Err()
		})
		if service.Status != "up" {
			overallStatus = StatusDegraded
		}
		services = append(services, service)
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}

func (h *HealthChecker) dbName() string {
	if h.DBName == "" {
		return "Database"
	}
	return h.DBName
}

func (h *HealthChecker) ping(ctx context.Context, name string, fn func(context.Context) error) Service {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	service := Service{Name: name, Status: "up"}
	if err := fn(ctx); err != nil {
		service.Status = "down"
		service.Message = err.Error()
	}
	return service
}
