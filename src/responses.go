package main

import (
	"bookify/src/types"
	"bookify/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// abortWithError answers with the status and safe message of err.
func abortWithError(ctx *gin.Context, err error) {
	appErr := types.AsAppError(err)
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		log.Printf("[%s %s] %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
	}
	ctx.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
}

func abortWithBindError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// parseStay reads a check_in/check_out pair. Malformed dates are a
// validation error.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, types.ErrInvalidDateRange
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, types.ErrInvalidDateRange
	}
	return in, out, nil
}
