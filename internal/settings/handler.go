package settings

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type SettingsHandler struct {
	Repository *SettingsRepository
}

func NewHandler(r *SettingsRepository) *SettingsHandler {
	return &SettingsHandler{Repository: r}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", security.Authorize("user"), h.GetSettings)
	router.PUT("/settings/asset-types", security.Authorize("admin"), h.UpdateAssetTypes)
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	types, err := h.Repository.AssetTypes()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assetTypes": types})
}

func (h *SettingsHandler) UpdateAssetTypes(c *gin.Context) {
	var req struct {
		AssetTypes []string `json:"assetTypes" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	types := make([]string, 0, len(req.AssetTypes))
	for _, name := range req.AssetTypes {
		name = strings.TrimSpace(name)
		if name != "" {
			types = append(types, name)
		}
	}

	if err := h.Repository.ReplaceAssetTypes(types); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update asset types", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assetTypes": types})
}
