package handlers

import (
	"net/http"
	"time"

	providerRepo "freshnest/database/repository/provider"
	"freshnest/models"
	"freshnest/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProviderHandler exposes back-office CRUD on the provider directory. The
// matching engine only ever reads the directory; these endpoints are how
// records get there.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

func (h *ProviderHandler) CreateProvider(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if provider.Status == "" {
		provider.Status = models.ProviderActive
	}
	if !provider.LocationGeo.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "locationGeo must be a valid GeoJSON point")
		return
	}

	if err := h.Repo.Create(&provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create provider", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": provider})
}

func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id := c.Param("id")
	provider, err := h.Repo.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}

func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	id := c.Param("id")
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	provider.ID = id
	provider.UpdatedAt = time.Now()

	if err := h.Repo.Update(&provider); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}
