package main

import (
	"bookify/src/common"
	"bookify/src/middlewares"
	"bookify/src/types"
	"bookify/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	featuredRoomsLimit  = 6
	latestFeedbackLimit = 6
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", middlewares.OptionalAuth, func(ctx *gin.Context) {
			var query types.RoomSearchQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			filter := common.RoomFilter{
				TypeID:        query.TypeID,
				PriceMin:      query.PriceMin,
				PriceMax:      query.PriceMax,
				Guests:        query.Adults + query.Children,
				Search:        query.Search,
				FavoritesOnly: query.FavoritesOnly,
				UserID:        ctx.GetUint("id"),
				Sort:          query.Sort,
				Page:          query.Page,
				PageSize:      query.PageSize,
			}
			if query.CheckIn != "" && query.CheckOut != "" {
				in, out, err := parseStay(query.CheckIn, query.CheckOut)
				if err != nil {
					abortWithError(ctx, err)
					return
				}
				filter.CheckIn, filter.CheckOut = in, out
			}
			page, err := common.SearchRooms(filter, utils.Today())
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": page})
		}).
		GET("/rooms/featured", func(ctx *gin.Context) {
			rooms, err := common.FeaturedRooms(featuredRoomsLimit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/rooms/:id", middlewares.OptionalAuth, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			room, err := common.GetRoomListing(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		GET("/rooms/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var query types.StayRequestBody
			if err := ctx.ShouldBindQuery(&query); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			in, out, err := parseStay(query.CheckIn, query.CheckOut)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			available, err := common.CheckRoomAvailability(params.ID, in, out)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"room_id":   params.ID,
				"check_in":  query.CheckIn,
				"check_out": query.CheckOut,
				"available": available,
			}})
		}).
		GET("/rooms/:id/feedback", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			feedback, err := common.ListRoomFeedback(params.ID, true)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			average, err := common.AverageRating(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback), "average_rating": average})
		}).
		GET("/room-types", func(ctx *gin.Context) {
			roomTypes, err := common.ListRoomTypes()
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": roomTypes, "count": len(roomTypes)})
		}).
		GET("/room-types/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			roomType, err := common.GetRoomTypeBySlug(params.Slug)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": roomType})
		}).
		GET("/feedback/latest", func(ctx *gin.Context) {
			feedback, err := common.LatestFeedback(latestFeedbackLimit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback)})
		})
	return g
}

// guestRoomHandlers are the room actions that need a signed-in guest.
func guestRoomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rooms/:id/feedback", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.CreateFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			feedback, err := common.AddFeedback(ctx.GetUint("id"), params.ID, body.Comment, body.Rating)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": feedback})
		}).
		POST("/rooms/:id/favorite", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			favorite, err := common.ToggleFavorite(ctx.GetUint("id"), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"room_id": params.ID, "is_favorite": favorite}})
		}).
		GET("/rooms/:id/favorite", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			favorite, err := common.IsFavorite(ctx.GetUint("id"), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"room_id": params.ID, "is_favorite": favorite}})
		}).
		GET("/favorites", func(ctx *gin.Context) {
			favorites, err := common.ListFavoriteRooms(ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": favorites, "count": len(favorites)})
		})
	return g
}
