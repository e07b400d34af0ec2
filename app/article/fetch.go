package article

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"

	"github.com/gin-gonic/gin"
)

func FetchAll(c *gin.Context, d *internal.Deps) {
	articles, err := d.Articles.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

func Fetch(c *gin.Context, d *internal.Deps) {
	a, err := d.Articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func FetchByUser(c *gin.Context, d *internal.Deps) {
	articles, err := d.Articles.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}
