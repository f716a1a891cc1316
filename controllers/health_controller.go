package controllers

import (
	"net/http"
	"time"

	"github.com/smart450/site/models"
	"github.com/smart450/site/reqctx"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Protocol  string `json:"protocol"`
}

// HealthController reports liveness
type HealthController struct {
	now func() time.Time
}

// NewHealthController creates a new health controller
func NewHealthController() *HealthController {
	return &HealthController{now: time.Now}
}

// Check handles GET /health
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	protocol := reqctx.GetProtocol(r.Context())
	if r.TLS != nil {
		protocol = models.ProtocolHTTPS
	}

	sendJSONResponse(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: models.FormatISO(c.now()),
		Protocol:  protocol,
	})
}
