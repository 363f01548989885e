package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers/handlers"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine"
)

type ScalingHandler struct {
	logger        lager.Logger
	primary       string
	historyDB     db.ScalingHistoryDB
	scalingEngine scalingengine.ScalingEngine
}

func NewScalingHandler(logger lager.Logger, primary string, historyDB db.ScalingHistoryDB, scalingEngine scalingengine.ScalingEngine) *ScalingHandler {
	return &ScalingHandler{
		logger:        logger.Session("scaling-handler"),
		primary:       primary,
		historyDB:     historyDB,
		scalingEngine: scalingEngine,
	}
}

func (h *ScalingHandler) Reconcile(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	primary := vars["primary"]
	logger := h.logger.Session("reconcile", lager.Data{"primary": primary})

	if !h.knownPrimary(w, logger, primary) {
		return
	}

	outcome, err := h.scalingEngine.Scale(r.Context())
	if err != nil {
		logger.Error("failed-to-reconcile", err)
		handlers.WriteJSONResponse(w, logger, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "Internal-Server-Error",
			Message: "Error running reconciliation pass",
		})
		return
	}

	handlers.WriteJSONResponse(w, logger, http.StatusOK, outcome)
}

func (h *ScalingHandler) GetScalingHistories(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	primary := vars["primary"]
	logger := h.logger.Session("get-scaling-histories", lager.Data{"primary": primary})

	if !h.knownPrimary(w, logger, primary) {
		return
	}

	query := r.URL.Query()
	logger.Debug("handling", lager.Data{"query": query})

	start, ok := h.int64Param(w, logger, query["start"], 0, "start time")
	if !ok {
		return
	}
	end, ok := h.int64Param(w, logger, query["end"], -1, "end time")
	if !ok {
		return
	}

	order := db.DESC
	if orderParam := query["order"]; len(orderParam) == 1 {
		switch strings.ToUpper(orderParam[0]) {
		case db.DESCSTR:
			order = db.DESC
		case db.ASCSTR:
			order = db.ASC
		default:
			h.badRequest(w, logger, fmt.Sprintf("Incorrect order parameter in query string, the value can only be %s or %s", db.ASCSTR, db.DESCSTR))
			return
		}
	} else if len(orderParam) > 1 {
		h.badRequest(w, logger, "Incorrect order parameter in query string")
		return
	}

	includeAll := false
	if includeParam := query["include-all"]; len(includeParam) == 1 {
		var err error
		includeAll, err = strconv.ParseBool(includeParam[0])
		if err != nil {
			h.badRequest(w, logger, "Incorrect include-all parameter in query string")
			return
		}
	} else if len(includeParam) > 1 {
		h.badRequest(w, logger, "Incorrect include-all parameter in query string")
		return
	}

	histories, err := h.historyDB.RetrieveScalingHistories(primary, start, end, order, includeAll)
	if err != nil {
		logger.Error("failed-to-retrieve-histories", err, lager.Data{"start": start, "end": end, "order": order})
		handlers.WriteJSONResponse(w, logger, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "Internal-Server-Error",
			Message: "Error getting scaling histories from database",
		})
		return
	}
	if histories == nil {
		histories = []*models.ScalingOutcome{}
	}

	handlers.WriteJSONResponse(w, logger, http.StatusOK, histories)
}

func (h *ScalingHandler) knownPrimary(w http.ResponseWriter, logger lager.Logger, primary string) bool {
	if primary == h.primary {
		return true
	}
	logger.Info("unknown-primary")
	handlers.WriteJSONResponse(w, logger, http.StatusNotFound, models.ErrorResponse{
		Code:    "Not-Found",
		Message: fmt.Sprintf("Primary instance %s is not managed by this autoscaler", primary),
	})
	return false
}

func (h *ScalingHandler) int64Param(w http.ResponseWriter, logger lager.Logger, values []string, defaultValue int64, name string) (int64, bool) {
	switch len(values) {
	case 0:
		return defaultValue, true
	case 1:
		value, err := strconv.ParseInt(values[0], 10, 64)
		if err != nil {
			logger.Error("failed-to-parse-"+strings.ReplaceAll(name, " ", "-"), err, lager.Data{"value": values[0]})
			h.badRequest(w, logger, "Error parsing "+name)
			return 0, false
		}
		return value, true
	default:
		h.badRequest(w, logger, fmt.Sprintf("Incorrect %s parameter in query string", strings.Fields(name)[0]))
		return 0, false
	}
}

func (h *ScalingHandler) badRequest(w http.ResponseWriter, logger lager.Logger, message string) {
	handlers.WriteJSONResponse(w, logger, http.StatusBadRequest, models.ErrorResponse{
		Code:    "Bad-Request",
		Message: message,
	})
}
