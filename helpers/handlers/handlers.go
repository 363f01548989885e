package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"code.cloudfoundry.org/lager/v3"
)

// WriteJSONResponse marshals jsonObj and writes it with statusCode. A value
// that cannot be marshalled turns into a 500.
func WriteJSONResponse(w http.ResponseWriter, logger lager.Logger, statusCode int, jsonObj interface{}) {
	jsonBytes, err := json.Marshal(jsonObj)
	if err != nil {
		logger.Error("marshal-json-response", err, lager.Data{"statusCode": statusCode})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(jsonBytes)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err = w.Write(jsonBytes); err != nil {
		logger.Error("write-json-response", err)
	}
}
