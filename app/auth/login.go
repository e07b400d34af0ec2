package auth

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	var data loginBody
	if !respond.Bind(c, &data) {
		return
	}

	res, err := d.Auth.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
