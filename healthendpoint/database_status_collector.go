package healthendpoint

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

type DatabaseStatus interface {
	GetDBStatus() sql.DBStats
}

type dbStat struct {
	desc  *prometheus.Desc
	value func(sql.DBStats) float64
}

type databaseStatusCollector struct {
	stats    []dbStat
	dbStatus DatabaseStatus
}

// NewDatabaseStatusCollector exports the connection pool stats of one
// database as gauges named <namespace>_<subsystem>_<dbName>_<stat>.
func NewDatabaseStatusCollector(namespace, subSystem string, dbName string, dbStatus DatabaseStatus) prometheus.Collector {
	gauge := func(name string, help string, value func(sql.DBStats) float64) dbStat {
		return dbStat{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, subSystem, dbName+"_"+name), help, nil, nil),
			value: value,
		}
	}
	return &databaseStatusCollector{
		stats: []dbStat{
			gauge("max_open_connections", "Maximum number of open connections to the database",
				func(s sql.DBStats) float64 { return float64(s.MaxOpenConnections) }),
			gauge("open_connections", "The number of established connections both in use and idle",
				func(s sql.DBStats) float64 { return float64(s.OpenConnections) }),
			gauge("in_use", "The number of connections currently in use",
				func(s sql.DBStats) float64 { return float64(s.InUse) }),
			gauge("idle", "The number of idle connections",
				func(s sql.DBStats) float64 { return float64(s.Idle) }),
			gauge("wait_count", "The total number of connections waited for",
				func(s sql.DBStats) float64 { return float64(s.WaitCount) }),
			gauge("wait_duration", "The total time blocked waiting for a new connection",
				func(s sql.DBStats) float64 { return float64(s.WaitDuration) }),
			gauge("max_idle_closed", "The total number of connections closed due to SetMaxIdleConns",
				func(s sql.DBStats) float64 { return float64(s.MaxIdleClosed) }),
			gauge("max_lifetime_closed", "The total number of connections closed due to SetConnMaxLifetime",
				func(s sql.DBStats) float64 { return float64(s.MaxLifetimeClosed) }),
		},
		dbStatus: dbStatus,
	}
}

func (c *databaseStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, stat := range c.stats {
		ch <- stat.desc
	}
}

func (c *databaseStatusCollector) Collect(ch chan<- prometheus.Metric) {
	dbMetrics := c.dbStatus.GetDBStatus()
	for _, stat := range c.stats {
		ch <- prometheus.MustNewConstMetric(stat.desc, prometheus.GaugeValue, stat.value(dbMetrics))
	}
}
