package main

import (
	"context"
	"os"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tedsuo/ifrit/grouper"

	"github.com/cloudsql-replica-autoscaler/autoscaler/cloudsql"
	"github.com/cloudsql-replica-autoscaler/autoscaler/configutil"
	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
	"github.com/cloudsql-replica-autoscaler/autoscaler/metric"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
	"github.com/cloudsql-replica-autoscaler/autoscaler/operator"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine/config"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine/server"
	"github.com/cloudsql-replica-autoscaler/autoscaler/startup"
	"github.com/cloudsql-replica-autoscaler/autoscaler/sync"
)

const (
	subSystem     = "scalingengine"
	lockTableName = "replica_autoscaler_lock"
)

func main() {
	conf, flags, logger := startup.Bootstrap("replica-autoscaler", func(path string) (*config.Config, error) {
		return config.LoadConfig(path, configutil.OSLookup)
	})

	eClock := clock.NewClock()
	primary := conf.Primary.InstanceName

	client, err := cloudsql.NewClient(context.Background(), conf.CloudSQL, logger.Session("cloudsql"))
	startup.ExitOnError(err, logger, "failed-to-create-cloudsql-client")
	admin := cloudsql.NewAdminClient(client, conf.Primary.ProjectID, conf.Primary.Region, conf.ReplicaTemplate, logger.Session("cloudsql-admin"))

	collector, err := newCollector(conf, client, eClock, logger)
	startup.ExitOnError(err, logger, "failed-to-create-metrics-collector", lager.Data{"source": conf.Metrics.Source})

	historyDB, err := startup.CreateScalingHistoryDB(conf.DB.ScalingHistoryDB, conf.ScalingHistory.CutoffDuration, logger)
	startup.ExitOnError(err, logger, "failed-to-connect-scaling-history-db", lager.Data{"dbConfig": conf.DB.ScalingHistoryDB})

	statusCollector := healthendpoint.NewScalingStatusCollector(healthendpoint.Namespace, subSystem)
	reconciler := scalingengine.NewReconciler(admin, conf.Reconciler.MaxConcurrentOps, logger)
	engine := scalingengine.NewScalingEngine(logger, primary, conf.ScalingPolicy(), admin, collector, reconciler, historyDB.DB, statusCollector, eClock)

	if flags.Once {
		code := runOnce(engine, conf, logger)
		_ = historyDB.Closer()
		os.Exit(code)
	}

	httpStatusCollector := healthendpoint.NewHTTPStatusCollector(healthendpoint.Namespace, subSystem)
	promCollectors := []prometheus.Collector{statusCollector, httpStatusCollector}
	checkers := []healthendpoint.Checker{healthendpoint.OutcomeChecker("scaling_engine", statusCollector.LastPassFailed)}
	if historyDB.Monitored != nil {
		promCollectors = append(promCollectors, healthendpoint.NewDatabaseStatusCollector(healthendpoint.Namespace, subSystem, db.ScalingHistoryDb, historyDB.Monitored))
		checkers = append(checkers, healthendpoint.DbChecker(db.ScalingHistoryDb, historyDB.Monitored))
	}

	reconcileRunner := operator.NewOperatorRunner(
		operator.NewReplicaReconciler(engine, conf.Scaling.Interval, logger),
		conf.Scaling.Interval, eClock, logger.Session("replica-reconciler-runner"))
	prunerRunner := operator.NewOperatorRunner(
		operator.NewScalingHistoryPruner(historyDB.DB, conf.ScalingHistory.CutoffDuration, eClock, logger),
		conf.ScalingHistory.RefreshInterval, eClock, logger.Session("scaling-history-pruner-runner"))

	members := grouper.Members{
		{Name: "replica-reconciler", Runner: reconcileRunner},
		{Name: "scaling-history-pruner", Runner: prunerRunner},
	}

	if conf.Server.Port != 0 {
		httpServer, err := server.NewServer(logger.Session("http-server"), conf.Server, primary, historyDB.DB, engine, httpStatusCollector)
		startup.ExitOnError(err, logger, "failed-to-create-http-server")
		members = append(members, grouper.Member{Name: "http_server", Runner: httpServer})
	}

	if conf.DB.LockDB.URL != "" {
		lockDB, err := startup.CreateLockDB(conf.DB.LockDB, lockTableName, logger)
		startup.ExitOnError(err, logger, "failed-to-connect-lock-database", lager.Data{"dbConfig": conf.DB.LockDB})
		defer func() { _ = lockDB.Closer() }()
		promCollectors = append(promCollectors, healthendpoint.NewDatabaseStatusCollector(healthendpoint.Namespace, subSystem, db.LockDb, lockDB.Monitored))
		checkers = append(checkers, healthendpoint.DbChecker(db.LockDb, lockDB.Monitored))

		dbLock := sync.NewDatabaseLock(logger, eClock)
		dbLockMaintainer := dbLock.InitDBLockRunner(conf.DBLock.LockRetryInterval, conf.DBLock.LockTTL, conf.PrimaryRef().String(), uuid.NewString(), lockDB.DB,
			func() {}, func() {
				logger.Info("lost-lock-exiting")
				os.Exit(1)
			})
		members = append(grouper.Members{{Name: "db-lock-maintainer", Runner: dbLockMaintainer}}, members...)
	} else {
		logger.Info("lock-db-not-configured", lager.Data{"message": "run a single instance per primary"})
	}

	promRegistry := prometheus.NewRegistry()
	healthendpoint.RegisterCollectors(promRegistry, promCollectors, true, logger.Session("replica-autoscaler-prometheus"))

	healthServer, err := healthendpoint.NewServerWithBasicAuth(conf.Health, checkers, logger.Session("health-server"), promRegistry, eClock)
	startup.ExitOnError(err, logger, "failed-to-create-health-server")
	members = append(grouper.Members{{Name: "health_server", Runner: healthServer}}, members...)

	logger.Info("starting", lager.Data{"primary": conf.PrimaryRef().String(), "interval": conf.Scaling.Interval})
	err = startup.StartServices(logger, members)
	_ = historyDB.Closer()
	if err != nil {
		os.Exit(1)
	}
}

func runOnce(engine scalingengine.ScalingEngine, conf *config.Config, logger lager.Logger) int {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Scaling.Interval)
	defer cancel()

	outcome, err := engine.Scale(ctx)
	if err != nil {
		logger.Error("reconciliation-failed", err)
		return 1
	}
	logger.Info("reconciliation-completed", lager.Data{"outcome": outcome})
	if outcome.Status == models.ScalingStatusFailed {
		return 1
	}
	return 0
}

func newCollector(conf *config.Config, client *cloudsql.Client, eClock clock.Clock, logger lager.Logger) (metric.Collector, error) {
	switch conf.Metrics.Source {
	case config.MetricsSourcePrometheus:
		promCollector, err := metric.NewPrometheusCollector(conf.Metrics.Prometheus, conf.Primary.ProjectID, conf.Metrics.Lookback, eClock, logger.Session("prometheus-collector"))
		if err != nil {
			return nil, err
		}
		return promCollector, nil
	default:
		return cloudsql.NewMonitoringCollector(client, conf.Primary.ProjectID, conf.Metrics.Lookback, eClock, logger.Session("monitoring-collector")), nil
	}
}
