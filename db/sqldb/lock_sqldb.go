package sqldb

import (
	"database/sql"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/jmoiron/sqlx"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// LockSQLDB stores one lock row per key. The key is the primary instance an
// autoscaler instance is responsible for, so several primaries can be served
// from one lock table.
type LockSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	table    string
	sqldb    *sqlx.DB
}

func NewLockSQLDB(dbConfig db.DatabaseConfig, table string, logger lager.Logger) (*LockSQLDB, error) {
	sqldb, err := connect(dbConfig, "lock-db", logger)
	if err != nil {
		return nil, err
	}

	if err = createLockTable(sqldb, table); err != nil {
		_ = sqldb.Close()
		logger.Error("create-lock-table", err, lager.Data{"table": table})
		return nil, err
	}

	return &LockSQLDB{
		dbConfig: dbConfig,
		logger:   logger.Session("lock-sqldb"),
		sqldb:    sqldb,
		table:    table,
	}, nil
}

func (ldb *LockSQLDB) Close() error {
	err := ldb.sqldb.Close()
	if err != nil {
		ldb.logger.Error("close-lock-db", err)
		return err
	}
	return nil
}

//nolint:gosec // #nosec G202 -- table name comes from configuration.
func (ldb *LockSQLDB) fetch(key string, tx *sql.Tx) (*models.Lock, error) {
	ldb.logger.Debug("fetching-lock", lager.Data{"key": key})
	var (
		owner      string
		timestamp  time.Time
		ttlSeconds int64
	)

	query := ldb.sqldb.Rebind("SELECT owner,lock_timestamp,ttl FROM " + ldb.table + " WHERE lock_key = ? FOR UPDATE")
	err := tx.QueryRow(query, key).Scan(&owner, &timestamp, &ttlSeconds)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		ldb.logger.Error("failed-to-fetch-lock-details", err, lager.Data{"key": key})
		return nil, err
	}
	return &models.Lock{
		Key:                   key,
		Owner:                 owner,
		LastModifiedTimestamp: timestamp,
		Ttl:                   time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (ldb *LockSQLDB) remove(key string, owner string, tx *sql.Tx) error {
	ldb.logger.Debug("removing-lock", lager.Data{"key": key, "owner": owner})
	query := ldb.sqldb.Rebind("DELETE FROM " + ldb.table + " WHERE lock_key = ? AND owner = ?")
	if _, err := tx.Exec(query, key, owner); err != nil {
		ldb.logger.Error("failed-to-delete-lock-details", err)
		return err
	}
	return nil
}

func (ldb *LockSQLDB) insert(lock *models.Lock, tx *sql.Tx) error {
	ldb.logger.Info("inserting-the-lock-details", lager.Data{"key": lock.Key, "owner": lock.Owner, "ttl": lock.Ttl})
	currentTimestamp, err := ldb.getDatabaseTimestamp(tx)
	if err != nil {
		return err
	}
	query := ldb.sqldb.Rebind("INSERT INTO " + ldb.table + " (lock_key,owner,lock_timestamp,ttl) VALUES (?,?,?,?)")
	if _, err = tx.Exec(query, lock.Key, lock.Owner, currentTimestamp, int64(lock.Ttl/time.Second)); err != nil {
		ldb.logger.Error("failed-to-insert-lock-details", err)
		return err
	}
	return nil
}

func (ldb *LockSQLDB) renew(lock *models.Lock, tx *sql.Tx) error {
	ldb.logger.Debug("renewing-lock", lager.Data{"key": lock.Key, "owner": lock.Owner})
	currentTimestamp, err := ldb.getDatabaseTimestamp(tx)
	if err != nil {
		return err
	}
	query := ldb.sqldb.Rebind("UPDATE " + ldb.table + " SET lock_timestamp = ?, ttl = ? WHERE lock_key = ? AND owner = ?")
	if _, err = tx.Exec(query, currentTimestamp, int64(lock.Ttl/time.Second), lock.Key, lock.Owner); err != nil {
		ldb.logger.Error("failed-to-update-lock-details-during-lock-renewal", err)
		return err
	}
	return nil
}

func (ldb *LockSQLDB) Release(key string, owner string) error {
	ldb.logger.Debug("releasing-lock", lager.Data{"key": key, "owner": owner})
	return transact(ldb.sqldb, ldb.logger, func(tx *sql.Tx) error {
		return ldb.remove(key, owner, tx)
	})
}

// Lock acquires or renews lock.Key for lock.Owner. It reports false without
// an error when another owner holds an unexpired lock on the same key.
func (ldb *LockSQLDB) Lock(lock *models.Lock) (bool, error) {
	ldb.logger.Debug("acquiring-lock", lager.Data{"key": lock.Key, "owner": lock.Owner})
	isLockAcquired := true
	err := transact(ldb.sqldb, ldb.logger, func(tx *sql.Tx) error {
		newLock := false
		fetchedLock, err := ldb.fetch(lock.Key, tx)
		switch {
		case err != nil:
			isLockAcquired = false
			return err
		case fetchedLock == nil:
			ldb.logger.Debug("no-one-holds-the-lock", lager.Data{"key": lock.Key})
			newLock = true
		case fetchedLock.Owner != lock.Owner:
			currentTimestamp, err := ldb.getDatabaseTimestamp(tx)
			if err != nil {
				isLockAcquired = false
				return err
			}
			if !fetchedLock.LastModifiedTimestamp.Add(fetchedLock.Ttl).Before(currentTimestamp) {
				ldb.logger.Debug("lock-still-valid", lager.Data{"key": lock.Key, "owner": fetchedLock.Owner})
				isLockAcquired = false
				return nil
			}
			ldb.logger.Info("lock-expired", lager.Data{"key": lock.Key, "owner": fetchedLock.Owner})
			if err = ldb.remove(lock.Key, fetchedLock.Owner, tx); err != nil {
				isLockAcquired = false
				return err
			}
			newLock = true
		}

		if newLock {
			if err = ldb.insert(lock, tx); err != nil {
				isLockAcquired = false
				return err
			}
			ldb.logger.Info("acquired-lock-successfully", lager.Data{"key": lock.Key})
			return nil
		}

		if err = ldb.renew(lock, tx); err != nil {
			isLockAcquired = false
			return err
		}
		ldb.logger.Debug("renewed-lock-successfully", lager.Data{"key": lock.Key})
		return nil
	})

	return isLockAcquired, err
}

func (ldb *LockSQLDB) getDatabaseTimestamp(tx *sql.Tx) (time.Time, error) {
	var currentTimestamp time.Time
	var query string
	switch ldb.sqldb.DriverName() {
	case db.PostgresDriverName:
		query = "SELECT NOW() AT TIME ZONE 'utc'"
	case db.MysqlDriverName:
		query = "SELECT UTC_TIMESTAMP()"
	default:
		return time.Now().UTC(), nil
	}

	err := tx.QueryRow(query).Scan(&currentTimestamp)
	if err != nil {
		ldb.logger.Error("failed-fetching-timestamp", err)
		return time.Time{}, err
	}
	return currentTimestamp, nil
}

func (ldb *LockSQLDB) GetDBStatus() sql.DBStats {
	return ldb.sqldb.Stats()
}

func (ldb *LockSQLDB) Ping() error {
	return ldb.sqldb.Ping()
}
