package controllers

import (
	"net/http"

	"github.com/aufaa4aaaaa/kasir-app/api/responses"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

const envHeader = "X-Kasir-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the persistence mirror answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, mirror Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if mirror != nil {
			if err := mirror.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"mirror": cfg.Mirror.DriverName(),
		})
	}
}
