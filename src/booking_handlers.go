package main

import (
	"bookify/src/common"
	"bookify/src/config"
	"bookify/src/lib"
	awslib "bookify/src/lib/aws"
	"bookify/src/types"
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// paymentGateway is swapped out in tests.
var paymentGateway = func() lib.PaymentGateway {
	return lib.NewStripeGateway(lib.GetStripeClient())
}

var errPassUnavailable = types.NewAppError(types.KIND_CONFLICT, "a pass is only issued for confirmed bookings")

func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout", func(ctx *gin.Context) {
			store := getCartStore()
			key := cartKey(ctx)
			cart, err := store.Load(ctx, key)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if cart.IsEmpty() {
				abortWithError(ctx, types.ErrEmptyCart)
				return
			}
			result, err := common.Checkout(ctx, paymentGateway(), ctx.GetUint("id"), ctx.GetString("email"), cart)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := store.Clear(ctx, key); err != nil {
				log.Printf("Error clearing cart %s: %s\n", key, err.Error())
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": result})
		}).
		GET("/checkout/success", func(ctx *gin.Context) {
			var query types.CheckoutSuccessQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			bookings, err := common.ConfirmCheckoutSession(ctx, paymentGateway(), query.SessionID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			bookings, err := common.GetUserBookings(ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			booking, err := common.GetBookingForUser(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			if _, err := common.CancelBooking(params.ID, ctx.GetUint("id")); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/bookings/:id/pass", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			booking, err := common.GetBookingForUser(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if booking.Status != types.BOOKING_CONFIRMED {
				abortWithError(ctx, errPassUnavailable)
				return
			}
			filename := fmt.Sprintf("%s.jpeg", booking.BookingNumber)
			dest := path.Join(config.PassDir(), filename)
			if err := lib.WriteQRCode(booking.BookingNumber, dest); err != nil {
				log.Printf("Error writing pass for booking %s: %s\n", booking.BookingNumber, err.Error())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not generate pass"})
				return
			}
			if bucket := config.PassBucket(); bucket != "" {
				url, err := awslib.S3UploadPass(ctx, bucket, awslib.PassObjectKey(booking.BookingNumber), dest)
				if err != nil {
					abortWithError(ctx, types.ErrStorageUnavailable)
					return
				}
				ctx.Redirect(http.StatusFound, *url)
				return
			}
			ctx.FileAttachment(dest, filename)
		})
	return g
}
