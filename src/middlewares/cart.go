package middlewares

import (
	"bookify/src/config"
	"bookify/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CartCookie = "bookify_cart"

// CartSession gives anonymous visitors a stable cart id cookie.
func CartSession(ctx *gin.Context) {
	sid, err := ctx.Cookie(CartCookie)
	if err != nil || uuid.Validate(sid) != nil {
		sid = uuid.NewString()
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(CartCookie, sid, int(config.CartTTL().Seconds()), "/", "", utils.IsProd(), true)
	}
	ctx.Set("cart_session", sid)
}
