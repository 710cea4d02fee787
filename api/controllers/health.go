package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/api/responses"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
)

// ReadyChecker is one dependency probed by the readiness endpoint.
type ReadyChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, http.StatusOK, map[string]any{
			"success": true,
			"status":  "ok",
			"env":     env,
		})
	}
}

// HealthReady probes each registered dependency with a short deadline and
// reports per-dependency status. Any failure turns the whole response 503.
func HealthReady(logg *logger.Logger, checks []ReadyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deps := map[string]string{}
		healthy := true
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				healthy = false
				deps[check.Name] = "unavailable"
				if logg != nil {
					logg.Error(ctx, "readiness check failed: "+check.Name, err)
				}
				continue
			}
			deps[check.Name] = "ok"
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccess(w, status, map[string]any{
			"success":      healthy,
			"dependencies": deps,
		})
	}
}
