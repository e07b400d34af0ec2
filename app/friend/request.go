package friend

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

// pairBody identifies both sides of a friend operation. fromUserId is the
// user who sent the request, toUserId the one who received it.
type pairBody struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
}

func Request(c *gin.Context, d *internal.Deps) {
	var data pairBody
	if !respond.Bind(c, &data) {
		return
	}

	rel, err := d.Relationships.SendRequest(c.Request.Context(), data.FromUserID, data.ToUserID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": service.MsgRequestSent,
		"data":    rel,
	})
}
