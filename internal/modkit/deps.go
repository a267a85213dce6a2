// Package modkit wires service modules to shared dependencies
package modkit

import (
	"aidetector/internal/modkit/repokit"
	"aidetector/internal/platform/config"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	"aidetector/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps is handed to every module constructor; optional backends may be nil
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	RDS     redis.UniversalClient
	Metrics *metrics.Metrics
}

// DepsFrom copies the backends out of an open store
func DepsFrom(st *store.Store, cfg config.Conf, m *metrics.Metrics) Deps {
	return Deps{Log: st.Log, Cfg: cfg, PG: st.PG, CH: st.CH, RDS: st.RDS, Metrics: m}
}
