package auth

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Registration(c *gin.Context, d *internal.Deps) {
	var data service.RegisterInput
	if !respond.Bind(c, &data) {
		return
	}

	res, err := d.Auth.Registration(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
