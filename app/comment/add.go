package comment

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Add(c *gin.Context, d *internal.Deps) {
	var data service.CommentInput
	if !respond.Bind(c, &data) {
		return
	}

	comment, err := d.Comments.Add(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": service.MsgSuccess,
		"data":    comment,
	})
}
