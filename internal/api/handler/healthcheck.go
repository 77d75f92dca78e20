package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-analytics/pkg/utils"
)

// Pinger verifica se o banco responde
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthcheckResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func HealthcheckHandler(pinger Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Banco indisponível no healthcheck")
			apiErrors.WriteError(w, apiErrors.ErrDataUnavailable, "Banco de dados indisponível", nil)
			return
		}

		err := utils.WriteJSON(w, http.StatusOK, healthcheckResponse{Status: "ok", Time: time.Now().UTC()})
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
