package app

import (
	"time"

	"github.com/andescargo/manifiesto-backend/internal/platform/envutil"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type Config struct {
	Port              string
	RedisAddr         string
	CatalogCacheTTL   time.Duration
	ExportParallelism int
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.GetEnv("PORT", "8080", log)
	redisAddr := envutil.GetEnv("REDIS_ADDR", "", log)
	cacheTTLSeconds := envutil.GetEnvAsInt("CATALOG_CACHE_TTL", 300, log)
	exportParallelism := envutil.GetEnvAsInt("EXPORT_PARALLELISM", 4, log)
	return Config{
		Port:              port,
		RedisAddr:         redisAddr,
		CatalogCacheTTL:   time.Duration(cacheTTLSeconds) * time.Second,
		ExportParallelism: exportParallelism,
	}
}
