package friend

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Accept(c *gin.Context, d *internal.Deps) {
	var data pairBody
	if !respond.Bind(c, &data) {
		return
	}

	if err := d.Relationships.Accept(c.Request.Context(), data.FromUserID, data.ToUserID); err != nil {
		respond.Error(c, err)
		return
	}

	respond.Message(c, http.StatusOK, service.MsgRequestAccepted)
}
