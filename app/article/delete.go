package article

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	if err := d.Articles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	respond.Message(c, http.StatusOK, service.MsgArticleDeleted)
}
