package handlers

import (
	"net/http"

	"freshnest/models"
	"freshnest/services/pricing"
	"freshnest/utils"

	"github.com/gin-gonic/gin"
)

// Quote returns an itemized price for a service configuration. Unknown tiers
// fall back to defaults rather than failing, so this endpoint never 4xxes on
// tier values; only a missing service type is rejected.
func Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	breakdown := pricing.Quote(req.ServiceType, req.SizeTier, req.Frequency, req.AddOns)
	c.JSON(http.StatusOK, gin.H{"price": breakdown})
}
