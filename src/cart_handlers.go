package main

import (
	"bookify/src/common"
	"bookify/src/config"
	"bookify/src/lib"
	"bookify/src/middlewares"
	"bookify/src/types"
	"bookify/src/utils"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	cartStore     common.CartStore
	cartStoreOnce sync.Once
)

// getCartStore keeps carts in redis when it is configured and in process
// memory otherwise.
func getCartStore() common.CartStore {
	cartStoreOnce.Do(func() {
		if cartStore != nil {
			return
		}
		if rd := lib.GetRedisClient(); rd != nil {
			cartStore = common.NewRedisCartStore(rd, config.CartTTL())
			return
		}
		log.Println("REDIS_HOST is not set, carts are kept in memory")
		cartStore = common.NewMemoryCartStore()
	})
	return cartStore
}

func cartKey(ctx *gin.Context) string {
	return common.CartKey(ctx.GetUint("id"), ctx.GetString("cart_session"))
}

func cartHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	cart := g.Group("/cart")
	cart.Use(middlewares.OptionalAuth, middlewares.CartSession)
	cart.
		GET("", func(ctx *gin.Context) {
			c, err := getCartStore().Load(ctx, cartKey(ctx))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": c})
		}).
		GET("/count", func(ctx *gin.Context) {
			c, err := getCartStore().Load(ctx, cartKey(ctx))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"count": c.Count()}})
		}).
		POST("/items", func(ctx *gin.Context) {
			var body types.AddCartItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			in, out, err := parseStay(body.CheckIn, body.CheckOut)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			room, err := common.GetRoom(body.RoomID, false)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			store := getCartStore()
			key := cartKey(ctx)
			c, err := store.Load(ctx, key)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			item, err := c.Add(room, in, out, utils.Today())
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := store.Save(ctx, key, c); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": c, "item": item})
		}).
		PUT("/items/:itemId", func(ctx *gin.Context) {
			var params types.CartItemRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			var body types.StayRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			in, out, err := parseStay(body.CheckIn, body.CheckOut)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			store := getCartStore()
			key := cartKey(ctx)
			c, err := store.Load(ctx, key)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := c.Update(params.ItemID, in, out, utils.Today()); err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := store.Save(ctx, key, c); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": c})
		}).
		DELETE("/items/:itemId", func(ctx *gin.Context) {
			var params types.CartItemRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				abortWithBindError(ctx, err)
				return
			}
			store := getCartStore()
			key := cartKey(ctx)
			c, err := store.Load(ctx, key)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if !c.Remove(params.ItemID) {
				abortWithError(ctx, types.ErrCartItemNotFound)
				return
			}
			if err := store.Save(ctx, key, c); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": c})
		})
	return g
}
