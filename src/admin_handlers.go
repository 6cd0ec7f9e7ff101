package main

import (
	"bookify/src/common"
	"bookify/src/middlewares"
	"bookify/src/types"
	"bookify/src/utils"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	admin := g.Group("/admin")
	admin.Use(middlewares.AdminOnly)
	adminCatalogHandlers(admin)
	adminBookingHandlers(admin)
	return g
}

func adminCatalogHandlers(admin *gin.RouterGroup) {
	admin.
		GET("/room-types", func(ctx *gin.Context) {
			roomTypes, err := common.ListRoomTypes()
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": roomTypes, "count": len(roomTypes)})
		}).
		POST("/room-types", func(ctx *gin.Context) {
			var body types.RoomTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			roomType, err := common.CreateRoomType(&body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": roomType})
		}).
		PUT("/room-types/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.RoomTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			roomType, err := common.UpdateRoomType(params.ID, &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": roomType})
		}).
		DELETE("/room-types/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			if err := common.DeleteRoomType(params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/rooms", func(ctx *gin.Context) {
			rooms, err := common.ListAllRooms()
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			room, err := common.GetRoom(params.ID, true)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		POST("/rooms", func(ctx *gin.Context) {
			var body types.RoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			room, err := common.CreateRoom(&body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PUT("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.RoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			room, err := common.UpdateRoom(params.ID, &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		DELETE("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			if err := common.DeleteRoom(params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/rooms/:id/images", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.RoomImageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			image, err := common.AddRoomImage(params.ID, &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": image})
		}).
		DELETE("/rooms/:id/images/:imageId", func(ctx *gin.Context) {
			var params types.RoomImageRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			if err := common.RemoveRoomImage(params.ID, params.ImageID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/rooms/:id/feedback", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			feedback, err := common.ListRoomFeedback(params.ID, false)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback)})
		}).
		GET("/feedback/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			feedback, err := common.GetFeedback(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": feedback})
		}).
		PUT("/feedback/:id/approval", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.FeedbackApprovalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			if err := common.SetFeedbackApproval(params.ID, *body.Approved); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
}

func adminBookingHandlers(admin *gin.RouterGroup) {
	admin.
		GET("/bookings", func(ctx *gin.Context) {
			var filter types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filter); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			page, err := common.ListBookings(&filter)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": page})
		}).
		GET("/bookings/export", func(ctx *gin.Context) {
			var filter types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filter); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			filename := common.ExportFileName(time.Now())
			ctx.Header("Content-Type", "text/csv; charset=utf-8")
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			ctx.Status(http.StatusOK)
			if err := common.ExportBookingsCSV(ctx.Writer, &filter); err != nil {
				log.Printf("Error exporting bookings: %s\n", err.Error())
			}
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			booking, err := common.GetBooking(params.ID)
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
			if _, err := common.AdminCancelBooking(params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/dashboard", func(ctx *gin.Context) {
			stats, err := common.GetDashboardStats(utils.Today())
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": stats})
		})
}
