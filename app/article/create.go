package article

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func Create(c *gin.Context, d *internal.Deps) {
	var data service.ArticleInput
	if !respond.Bind(c, &data) {
		return
	}

	a, err := d.Articles.Create(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}
