package sqldb

import (
	"database/sql"
	"encoding/json"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/jmoiron/sqlx"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

type ScalingHistorySQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewScalingHistorySQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*ScalingHistorySQLDB, error) {
	sqldb, err := connect(dbConfig, "scaling-history-db", logger)
	if err != nil {
		return nil, err
	}

	if err = createScalingHistoryTable(sqldb); err != nil {
		_ = sqldb.Close()
		logger.Error("create-scaling-history-table", err)
		return nil, err
	}

	return &ScalingHistorySQLDB{
		dbConfig: dbConfig,
		logger:   logger.Session("scaling-history-sqldb"),
		sqldb:    sqldb,
	}, nil
}

func (sdb *ScalingHistorySQLDB) Close() error {
	err := sdb.sqldb.Close()
	if err != nil {
		sdb.logger.Error("close-scaling-history-db", err)
		return err
	}
	return nil
}

func (sdb *ScalingHistorySQLDB) SaveScalingHistory(outcome *models.ScalingOutcome) error {
	snapshot, err := json.Marshal(outcome.Snapshot)
	if err != nil {
		return err
	}
	ops, err := json.Marshal(outcome.Ops)
	if err != nil {
		return err
	}

	query := sdb.sqldb.Rebind("INSERT INTO " + scalingHistoryTable +
		" (primary_name, timestamp, status, action, old_replicas, new_replicas, reason, message, error, snapshot, ops)" +
		" VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err = sdb.sqldb.Exec(query, outcome.PrimaryName, outcome.Timestamp, int(outcome.Status), string(outcome.Decision.Action),
		outcome.Decision.CurrentReplicaCount, outcome.Decision.TargetReplicaCount, outcome.Decision.Reason,
		outcome.Message, outcome.Error, string(snapshot), string(ops))
	if err != nil {
		sdb.logger.Error("save-scaling-history", err, lager.Data{"query": query, "primary": outcome.PrimaryName})
	}
	return err
}

func (sdb *ScalingHistorySQLDB) RetrieveScalingHistories(primary string, start int64, end int64, orderType db.OrderType, includeAll bool) ([]*models.ScalingOutcome, error) {
	var orderStr string
	if orderType == db.DESC {
		orderStr = db.DESCSTR
	} else {
		orderStr = db.ASCSTR
	}

	query := sdb.sqldb.Rebind("SELECT timestamp, status, action, old_replicas, new_replicas, reason, message, error, snapshot, ops FROM " +
		scalingHistoryTable + " WHERE primary_name = ? AND timestamp >= ? AND timestamp <= ? ORDER BY timestamp " + orderStr)

	if end < 0 {
		end = time.Now().UnixNano()
	}

	rows, err := sdb.sqldb.Query(query, primary, start, end)
	if err != nil {
		sdb.logger.Error("retrieve-scaling-histories", err,
			lager.Data{"query": query, "primary": primary, "start": start, "end": end, "orderType": orderType})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	histories := []*models.ScalingOutcome{}
	for rows.Next() {
		var (
			status, oldReplicas, newReplicas       int
			action                                 string
			reason, message, errorMsg, snap, opStr sql.NullString
		)
		outcome := &models.ScalingOutcome{PrimaryName: primary}
		if err = rows.Scan(&outcome.Timestamp, &status, &action, &oldReplicas, &newReplicas,
			&reason, &message, &errorMsg, &snap, &opStr); err != nil {
			sdb.logger.Error("retrieve-scaling-history-scan", err)
			return nil, err
		}

		outcome.Status = models.ScalingStatus(status)
		outcome.Decision = models.ScalingDecision{
			Action:              models.ScalingAction(action),
			CurrentReplicaCount: oldReplicas,
			TargetReplicaCount:  newReplicas,
			Reason:              reason.String,
		}
		outcome.Message = message.String
		outcome.Error = errorMsg.String
		if snap.Valid && snap.String != "" {
			if err = json.Unmarshal([]byte(snap.String), &outcome.Snapshot); err != nil {
				sdb.logger.Error("retrieve-scaling-history-unmarshal-snapshot", err)
				return nil, err
			}
		}
		if opStr.Valid && opStr.String != "" {
			if err = json.Unmarshal([]byte(opStr.String), &outcome.Ops); err != nil {
				sdb.logger.Error("retrieve-scaling-history-unmarshal-ops", err)
				return nil, err
			}
		}

		if includeAll || outcome.Status != models.ScalingStatusIgnored {
			histories = append(histories, outcome)
		}
	}
	return histories, rows.Err()
}

func (sdb *ScalingHistorySQLDB) PruneScalingHistories(before int64) error {
	query := sdb.sqldb.Rebind("DELETE FROM " + scalingHistoryTable + " WHERE timestamp <= ?")
	_, err := sdb.sqldb.Exec(query, before)
	if err != nil {
		sdb.logger.Error("failed-prune-scaling-histories", err, lager.Data{"query": query, "before": before})
	}
	return err
}

func (sdb *ScalingHistorySQLDB) GetDBStatus() sql.DBStats {
	return sdb.sqldb.Stats()
}

func (sdb *ScalingHistorySQLDB) Ping() error {
	return sdb.sqldb.Ping()
}
