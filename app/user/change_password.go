package user

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

type changePasswordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func ChangePassword(c *gin.Context, d *internal.Deps) {
	var data changePasswordBody
	if !respond.Bind(c, &data) {
		return
	}

	err := d.Users.ChangePassword(c.Request.Context(), c.Param("id"), data.OldPassword, data.NewPassword)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Message(c, http.StatusOK, service.MsgPasswordChanged)
}
