package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/WalletPulse/WalletPulse-Backend/api/apistrings"
	"github.com/WalletPulse/WalletPulse-Backend/models"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps proxies from idling out an otherwise quiet stream.
const heartbeatInterval = 25 * time.Second

func (a *Accounts) streamLive(ctx *gin.Context) {
	accountID, ok := a.loadAccount(ctx)
	if !ok {
		return
	}

	snap, err := a.server.balanceService.GetLatestBalance(ctx, accountID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	initial := broadcast.Event{Type: broadcast.EventTypeInitial, NoData: true}
	if snap != nil {
		checkedAt := snap.CheckedAt
		initial = broadcast.Event{
			Type:         broadcast.EventTypeInitial,
			Balance:      broadcast.MajorUnits(snap.BalanceMinor),
			BalanceMinor: snap.BalanceMinor,
			CheckedAt:    &checkedAt,
		}
	}

	flusher, ok := ctx.Writer.(http.Flusher)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := a.server.hub.Subscribe(accountID, initial)
	defer a.server.hub.Unsubscribe(sub)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	clientGone := ctx.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(ctx.Writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case evt, open := <-sub.Events:
			if !open {
				return
			}
			frame, err := json.Marshal(evt)
			if err != nil {
				a.server.logger.WithFields(map[string]interface{}{
					"account_id": accountID,
					"error":      err.Error(),
				}).Error("could not encode live event")
				continue
			}
			if _, err := fmt.Fprintf(ctx.Writer, "data: %s\n\n", frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
