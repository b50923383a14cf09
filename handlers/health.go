package handlers

import (
	"net/http"

	"freshnest/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest stored health snapshot for Mongo and Redis.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
