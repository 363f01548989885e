package ratelimiter

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"

	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers/handlers"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

type RateLimiterMiddleware struct {
	Key         string
	logger      lager.Logger
	RateLimiter Limiter
}

// NewRateLimiterMiddleware limits requests per value of the route variable
// named key.
func NewRateLimiterMiddleware(key string, rateLimiter Limiter, logger lager.Logger) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		Key:         key,
		logger:      logger,
		RateLimiter: rateLimiter,
	}
}

func (mw *RateLimiterMiddleware) CheckRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)[mw.Key]
		if key == "" {
			mw.logger.Error("rate-limit-key-missing", nil, lager.Data{"key": mw.Key, "url": r.URL.String()})
			handlers.WriteJSONResponse(w, mw.logger, http.StatusBadRequest, models.ErrorResponse{
				Code:    "Bad Request",
				Message: "Missing rate limit key",
			})
			return
		}
		if mw.RateLimiter.ExceedsLimit(key) {
			mw.logger.Info("error-exceed-rate-limit", lager.Data{mw.Key: key})
			handlers.WriteJSONResponse(w, mw.logger, http.StatusTooManyRequests, models.ErrorResponse{
				Code:    "Request-Limit-Exceeded",
				Message: "Too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
