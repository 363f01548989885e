package healthendpoint

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

const readinessCacheDuration = 30 * time.Second

type (
	Pinger interface {
		Ping() error
	}

	ReadinessCheck struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}

	readinessResponse struct {
		OverallStatus string           `json:"overall_status"`
		Checks        []ReadinessCheck `json:"checks"`
	}

	Checker func() ReadinessCheck
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

type readinessCache struct {
	checkers []Checker
	clock    clock.Clock

	lock      sync.Mutex
	response  readinessResponse
	checkedAt time.Time
}

func readiness(checkers []Checker, clock clock.Clock) http.HandlerFunc {
	cache := &readinessCache{checkers: checkers, clock: clock}
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := json.Marshal(cache.get())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Internal error"}`))
			return
		}
		_, _ = w.Write(response)
	}
}

// get runs the checkers at most once per readinessCacheDuration, however
// many requests arrive concurrently.
func (c *readinessCache) get() readinessResponse {
	c.lock.Lock()
	defer c.lock.Unlock()

	now := c.clock.Now()
	if !c.checkedAt.IsZero() && now.Sub(c.checkedAt) < readinessCacheDuration {
		return c.response
	}

	checks := make([]ReadinessCheck, 0, len(c.checkers))
	overallStatus := StatusUp
	for _, checker := range c.checkers {
		check := checker()
		checks = append(checks, check)
		if check.Status == StatusDown {
			overallStatus = StatusDown
		}
	}
	c.response = readinessResponse{OverallStatus: overallStatus, Checks: checks}
	c.checkedAt = now
	return c.response
}

// DbChecker reports a database as UP when it answers a ping. A nil pinger
// stands for a database that is not configured and is always UP.
func DbChecker(dbName string, pinger Pinger) Checker {
	return func() ReadinessCheck {
		status := StatusUp
		if pinger != nil && pinger.Ping() != nil {
			status = StatusDown
		}
		return ReadinessCheck{Name: dbName, Type: "database", Status: status}
	}
}

// OutcomeChecker reports DOWN once the last reconciliation pass could not
// run at all.
func OutcomeChecker(name string, lastPassFailed func() bool) Checker {
	return func() ReadinessCheck {
		status := StatusUp
		if lastPassFailed() {
			status = StatusDown
		}
		return ReadinessCheck{Name: name, Type: "reconciliation", Status: status}
	}
}
