package db

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	PostgresDriverName = "postgres"
	MysqlDriverName    = "mysql"
	ScalingHistoryDb   = "scaling_history_db"
	LockDb             = "lock_db"
)

type OrderType uint8

const (
	DESC OrderType = iota
	ASC
)
const (
	DESCSTR string = "DESC"
	ASCSTR  string = "ASC"
)

var ErrDoesNotExist = fmt.Errorf("doesn't exist")

type DatabaseConfig struct {
	URL                   string        `yaml:"url"`
	MaxOpenConnections    int           `yaml:"max_open_connections"`
	MaxIdleConnections    int           `yaml:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	ConnectionMaxIdleTime time.Duration `yaml:"connection_max_idletime"`
}

type DatabaseStatus interface {
	GetDBStatus() sql.DBStats
}

type Pinger interface {
	Ping() error
}

// ScalingHistoryDB stores the outcome record of every reconciliation pass.
type ScalingHistoryDB interface {
	SaveScalingHistory(outcome *models.ScalingOutcome) error
	RetrieveScalingHistories(primary string, start int64, end int64, orderType OrderType, includeAll bool) ([]*models.ScalingOutcome, error)
	PruneScalingHistories(before int64) error
	io.Closer
}

type LockDB interface {
	Lock(lock *models.Lock) (bool, error)
	Release(key string, owner string) error
	io.Closer
}
