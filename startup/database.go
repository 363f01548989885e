package startup

import (
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/db/cachedb"
	"github.com/cloudsql-replica-autoscaler/autoscaler/db/sqldb"
)

// MonitoredDB is a SQL backed database that can report pool stats and be
// pinged by the readiness check.
type MonitoredDB interface {
	db.DatabaseStatus
	db.Pinger
}

type DatabaseConnection[T any] struct {
	DB     T
	Closer func() error
	// Monitored is nil for databases that are not backed by SQL.
	Monitored MonitoredDB
}

// CreateScalingHistoryDB connects to the scaling history database, or keeps
// the history in memory for retention when no url is configured.
func CreateScalingHistoryDB(dbConfig db.DatabaseConfig, retention time.Duration, logger lager.Logger) (*DatabaseConnection[db.ScalingHistoryDB], error) {
	if dbConfig.URL == "" {
		logger.Info("using-in-memory-scaling-history", lager.Data{"retention": retention})
		cacheDB := cachedb.NewScalingHistoryCacheDB(retention, logger.Session("scaling-history-cache"))
		return &DatabaseConnection[db.ScalingHistoryDB]{
			DB:     cacheDB,
			Closer: cacheDB.Close,
		}, nil
	}

	historyDB, err := sqldb.NewScalingHistorySQLDB(dbConfig, logger.Session("scaling-history-db"))
	if err != nil {
		return nil, err
	}
	return &DatabaseConnection[db.ScalingHistoryDB]{
		DB:        historyDB,
		Closer:    historyDB.Close,
		Monitored: historyDB,
	}, nil
}

func CreateLockDB(dbConfig db.DatabaseConfig, lockTableName string, logger lager.Logger) (*DatabaseConnection[db.LockDB], error) {
	lockDB, err := sqldb.NewLockSQLDB(dbConfig, lockTableName, logger.Session("lock-db"))
	if err != nil {
		return nil, err
	}
	return &DatabaseConnection[db.LockDB]{
		DB:        lockDB,
		Closer:    lockDB.Close,
		Monitored: lockDB,
	}, nil
}
