package sqldb

import (
	"github.com/jmoiron/sqlx"
)

const scalingHistoryTable = "replica_scaling_history"

//nolint:gosec // #nosec G202 -- table names come from configuration, not user input.
func createLockTable(sqldb *sqlx.DB, table string) error {
	_, err := sqldb.Exec("CREATE TABLE IF NOT EXISTS " + table + " (" +
		"lock_key VARCHAR(255) NOT NULL PRIMARY KEY, " +
		"owner VARCHAR(255) NOT NULL, " +
		"lock_timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
		"ttl BIGINT NOT NULL DEFAULT 0)")
	return err
}

func createScalingHistoryTable(sqldb *sqlx.DB) error {
	_, err := sqldb.Exec("CREATE TABLE IF NOT EXISTS " + scalingHistoryTable + " (" +
		"primary_name VARCHAR(255) NOT NULL, " +
		"timestamp BIGINT NOT NULL, " +
		"status INT NOT NULL, " +
		"action VARCHAR(32) NOT NULL, " +
		"old_replicas INT NOT NULL, " +
		"new_replicas INT NOT NULL, " +
		"reason TEXT, " +
		"message TEXT, " +
		"error TEXT, " +
		"snapshot TEXT, " +
		"ops TEXT, " +
		"PRIMARY KEY (primary_name, timestamp))")
	return err
}
