package main

import (
	"bookify/src/common"
	"bookify/src/config"
	"bookify/src/types"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxWebhookBodyBytes = int64(65536)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBodyBytes))
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		event, err := common.VerifyStripeEvent(payload, ctx.GetHeader("Stripe-Signature"), config.StripeWebhookSecret())
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[StripeEvent] %s %s\n", event.ID, event.Type)
		outcome, err := common.ProcessStripeEvent(event)
		if errors.Is(err, types.ErrMalformedPayload) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": types.AsAppError(err).Message})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": outcome})
	})
	return apiv1
}
