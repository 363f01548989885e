package sqldb

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	"code.cloudfoundry.org/lager/v3"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
)

func connect(dbConfig db.DatabaseConfig, name string, logger lager.Logger) (*sqlx.DB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DSN)
	if err != nil {
		logger.Error("open-"+name, err)
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-"+name, err)
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return sqldb, nil
}

func transact(sqldb *sqlx.DB, logger lager.Logger, f func(tx *sql.Tx) error) error {
	var err error
	for attempts := 0; attempts < 3; attempts++ {
		err = func() error {
			tx, err := sqldb.Begin()
			if err != nil {
				logger.Error("failed-starting-transaction", err)
				return err
			}
			defer func() {
				_ = tx.Rollback()
			}()

			err = f(tx)
			if err != nil {
				return err
			}

			err = tx.Commit()
			if err != nil {
				logger.Error("failed-committing-transaction", err)
			}
			return err
		}()

		// golang sql package does not always retry query on ErrBadConn
		if attempts >= 2 || !errors.Is(err, driver.ErrBadConn) {
			break
		}
		logger.Debug("wait-before-retry-for-transaction", lager.Data{"attempts": attempts})
		time.Sleep(500 * time.Millisecond)
	}

	return err
}
