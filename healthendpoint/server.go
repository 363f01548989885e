package healthendpoint

import (
	"net/http"
	"net/http/pprof"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tedsuo/ifrit"

	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"
)

// NewServerWithBasicAuth serves readiness and prometheus metrics on the
// health port. Metrics are behind basic auth when credentials are configured.
func NewServerWithBasicAuth(conf helpers.HealthConfig, healthCheckers []Checker, logger lager.Logger, gatherer prometheus.Gatherer, clock clock.Clock) (ifrit.Runner, error) {
	healthRouter, err := NewHealthRouter(conf, healthCheckers, logger, gatherer, clock)
	if err != nil {
		return nil, err
	}
	logger.Info("new-health-server", lager.Data{"addr": conf.ServerConfig.Addr(), "basic_auth": !conf.BasicAuth.IsEmpty()})
	return helpers.NewHTTPServer(logger, conf.ServerConfig, healthRouter)
}

func NewHealthRouter(conf helpers.HealthConfig, healthCheckers []Checker, logger lager.Logger, gatherer prometheus.Gatherer, clock clock.Clock) (*mux.Router, error) {
	basicAuthentication, err := helpers.CreateBasicAuthMiddleware(logger.Session("health-basic-auth"), conf.BasicAuth)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	// unauthenticated paths
	if conf.ReadinessCheckEnabled {
		router.Handle("/health/readiness", readiness(healthCheckers, clock)).Methods(http.MethodGet)
	}

	// authenticated paths
	everything := router.PathPrefix("").Subrouter()
	everything.Use(basicAuthentication.Middleware)
	if !conf.BasicAuth.IsEmpty() {
		pprofRouter := everything.PathPrefix("/debug/pprof").Subrouter()
		pprofRouter.HandleFunc("/cmdline", pprof.Cmdline)
		pprofRouter.HandleFunc("/profile", pprof.Profile)
		pprofRouter.HandleFunc("/symbol", pprof.Symbol)
		pprofRouter.HandleFunc("/trace", pprof.Trace)
		pprofRouter.PathPrefix("").HandlerFunc(pprof.Index)
	}
	everything.PathPrefix("").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return router, nil
}
