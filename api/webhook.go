package api

import (
	"io"
	"net/http"

	"github.com/WalletPulse/WalletPulse-Backend/models"
	"github.com/WalletPulse/WalletPulse-Backend/services/webhook"
	"github.com/gin-gonic/gin"
)

type Webhook struct {
	server *Server
}

func (w Webhook) router(server *Server) {
	w.server = server

	// Wallet networks probe with GET/HEAD before registering, then POST
	// deliveries; one Any route covers all of it.
	server.router.Any("/webhook/:prefix", w.receive)
}

func (w *Webhook) receive(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError("could not read request body"))
		return
	}

	prefix := ctx.Param("prefix")
	mobileOverride := ctx.Query("mobile_no")

	result, err := w.server.ingestService.Ingest(ctx, prefix, body, mobileOverride)
	if err != nil || result.Outcome == webhook.OutcomePersistFailed {
		if err != nil {
			w.server.logger.WithFields(map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			}).Error("webhook ingest failed")
		}
		// 5xx invites the sender to retry the delivery later.
		ctx.JSON(http.StatusBadGateway, models.NewError("could not persist webhook event"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "outcome": string(result.Outcome)})
}
