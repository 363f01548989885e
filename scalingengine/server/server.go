package server

import (
	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"
	"github.com/tedsuo/ifrit"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"
	"github.com/cloudsql-replica-autoscaler/autoscaler/ratelimiter"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine/config"
)

// NewRouter serves on-demand reconciliation and the scaling history of the
// managed primary. Manual reconciles are rate limited per primary.
func NewRouter(logger lager.Logger, conf config.ServerConfig, primary string, historyDB db.ScalingHistoryDB, scalingEngine scalingengine.ScalingEngine, rateLimiter ratelimiter.Limiter, httpStatusCollector healthendpoint.HTTPStatusCollector) (*mux.Router, error) {
	basicAuthentication, err := helpers.CreateBasicAuthMiddleware(logger, conf.BasicAuth)
	if err != nil {
		return nil, err
	}
	rateLimiterMiddleware := ratelimiter.NewRateLimiterMiddleware("primary", rateLimiter, logger.Session("reconcile-rate-limiter"))
	handler := NewScalingHandler(logger, primary, historyDB, scalingEngine)

	r := Routes()
	r.Use(healthendpoint.HTTPStatusMiddleware(httpStatusCollector))
	r.Use(basicAuthentication.Middleware)
	r.Get(ReconcileRouteName).Handler(rateLimiterMiddleware.CheckRateLimit(VarsFunc(handler.Reconcile)))
	r.Get(ScalingHistoriesRouteName).Handler(VarsFunc(handler.GetScalingHistories))
	return r, nil
}

func NewServer(logger lager.Logger, conf config.ServerConfig, primary string, historyDB db.ScalingHistoryDB, scalingEngine scalingengine.ScalingEngine, httpStatusCollector healthendpoint.HTTPStatusCollector) (ifrit.Runner, error) {
	rateLimiter := ratelimiter.DefaultRateLimiter(conf.RateLimit, logger.Session("ratelimiter"))
	r, err := NewRouter(logger, conf, primary, historyDB, scalingEngine, rateLimiter, httpStatusCollector)
	if err != nil {
		return nil, err
	}
	return helpers.NewHTTPServer(logger, conf.ServerConfig, r)
}
