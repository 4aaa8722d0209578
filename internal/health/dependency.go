package health

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// checkerFunc adapts a plain probe function into a Checker.
type checkerFunc struct {
	name  string
	probe func(ctx context.Context) error
}

func (c checkerFunc) Check(ctx context.Context) CheckResult {
	res := CheckResult{Name: c.name, Healthy: true}
	if err := c.probe(ctx); err != nil {
		res.Healthy = false
		res.Error = err.Error()
	}
	return res
}

// NewDBChecker probes the underlying sql.DB with a ping. Returns nil when no
// database is configured; ProbeRunner skips nil checkers.
func NewDBChecker(db *gorm.DB) Checker {
	if db == nil {
		return nil
	}
	return checkerFunc{name: "db", probe: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}
}

// NewRedisChecker pings the rate-limiter backend.
func NewRedisChecker(client redis.UniversalClient) Checker {
	if client == nil {
		return nil
	}
	return checkerFunc{name: "redis", probe: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}
