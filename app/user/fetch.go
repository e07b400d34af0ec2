package user

import (
	"net/http"

	"bitwise74/social-api/app/respond"
	"bitwise74/social-api/internal"

	"github.com/gin-gonic/gin"
)

func FetchAll(c *gin.Context, d *internal.Deps) {
	users, err := d.Users.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func Fetch(c *gin.Context, d *internal.Deps) {
	user, err := d.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
