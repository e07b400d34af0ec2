package article

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

type likeBody struct {
	UserID string `json:"userId"`
}

// Like toggles the caller's like. An empty body likes as the token's user.
func Like(c *gin.Context, d *internal.Deps) {
	var data likeBody
	if c.Request.ContentLength != 0 && !respond.Bind(c, &data) {
		return
	}

	if data.UserID == "" {
		data.UserID = c.GetString("userID")
	}

	a, err := d.Articles.ToggleLike(c.Request.Context(), c.Param("id"), data.UserID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": service.MsgSuccess,
		"data":    a,
	})
}
