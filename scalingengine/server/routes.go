package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

const (
	PrimaryPath               = "/v1/primaries/{primary}"
	ReconcilePath             = PrimaryPath + "/reconcile"
	ScalingHistoriesPath      = PrimaryPath + "/scaling_histories"
	ReconcileRouteName        = "reconcile"
	ScalingHistoriesRouteName = "get-scaling-histories"
)

type VarsFunc func(w http.ResponseWriter, r *http.Request, vars map[string]string)

func (vh VarsFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vh(w, r, mux.Vars(r))
}

func Routes() *mux.Router {
	r := mux.NewRouter()
	r.Path(ReconcilePath).Methods(http.MethodPost).Name(ReconcileRouteName)
	r.Path(ScalingHistoriesPath).Methods(http.MethodGet).Name(ScalingHistoriesRouteName)
	return r
}
