package user

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Update(c *gin.Context, d *internal.Deps) {
	var data service.UserUpdate
	if !respond.Bind(c, &data) {
		return
	}

	if err := d.Users.Update(c.Request.Context(), c.Param("id"), data); err != nil {
		respond.Error(c, err)
		return
	}

	respond.Message(c, http.StatusOK, service.MsgUserUpdated)
}
