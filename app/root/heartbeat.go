package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

func Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}
