package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type AssetLogHandler struct {
	Repository *AssetLogRepository
}

func NewHandler(r *AssetLogRepository) *AssetLogHandler {
	return &AssetLogHandler{Repository: r}
}

func (h *AssetLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/asset-logs", security.Authorize("admin"), h.GetAllLogs)
	router.GET("/asset-logs/:assetId", security.Authorize("admin"), h.GetLogsByAsset)
	router.DELETE("/asset-logs/:id", security.Authorize("admin"), h.DeleteLog)
}

func (h *AssetLogHandler) GetAllLogs(c *gin.Context) {
	logs, err := h.Repository.GetAllLogs()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *AssetLogHandler) GetLogsByAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("assetId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	logs, err := h.Repository.GetAssetLogs(assetID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *AssetLogHandler) DeleteLog(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log ID"})
		return
	}

	id, err := h.Repository.DeleteLog(logID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete asset log", "details": err.Error()})
		return
	}
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset log not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset log removed"})
}
