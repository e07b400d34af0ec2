package auth

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

type forgotBody struct {
	Email string `json:"email"`
}

func Forgot(c *gin.Context, d *internal.Deps) {
	var data forgotBody
	if !respond.Bind(c, &data) {
		return
	}

	if err := d.Auth.Forgot(c.Request.Context(), data.Email); err != nil {
		respond.Error(c, err)
		return
	}

	respond.Message(c, http.StatusOK, service.MsgPasswordReset)
}
