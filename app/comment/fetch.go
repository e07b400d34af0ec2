package comment

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"

	"github.com/gin-gonic/gin"
)

// FetchForArticle lists the comments of the article in the id param
func FetchForArticle(c *gin.Context, d *internal.Deps) {
	comments, err := d.Comments.ForArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
