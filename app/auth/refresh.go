package auth

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"

	"github.com/gin-gonic/gin"
)

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

func Refresh(c *gin.Context, d *internal.Deps) {
	var data refreshBody
	if !respond.Bind(c, &data) {
		return
	}

	res, err := d.Auth.RefreshToken(c.Request.Context(), data.RefreshToken)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
