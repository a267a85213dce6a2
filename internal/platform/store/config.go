package store

import (
	"time"

	"aidetector/internal/platform/config"
)

// Config aggregates per backend settings
type Config struct {
	AppName string // reported to clickhouse as the client product
	Role    string // api, scan

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures the pgx pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string
}

// RedisConfig configures go-redis
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_REDIS_* and SERVICE_CLICKHOUSE_*
// Postgres is on by default, the others are opt in
func ConfigFromEnv(root config.Conf, app, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	rds := root.Prefix("SERVICE_REDIS_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: app,
		Role:    role,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", true),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		RDS: RedisConfig{
			Enabled: rds.MayBool("ENABLED", false),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pg.MustString("DBURL")
	}
	if cfg.RDS.Enabled {
		cfg.RDS.Addr = rds.MayString("ADDR", "localhost:6379")
		cfg.RDS.Password = rds.MayString("PASSWORD", "")
		cfg.RDS.DB = rds.MayInt("DB", 0)
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("DBURL")
	}
	return cfg
}
