package assets

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
	"github.com/thejas-1999/Assets-Management/pkg/roles"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type AssetHandler struct {
	Service   *AssetService
	Lifecycle *LifecycleService
}

func NewAssetHandler(service *AssetService, lifecycle *LifecycleService) *AssetHandler {
	return &AssetHandler{
		Service:   service,
		Lifecycle: lifecycle,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets", security.Authorize("admin"), h.CreateAssets)
	router.GET("/assets", security.Authorize("admin"), h.GetAssetList)
	router.GET("/assets/:id", security.Authorize("admin"), h.GetAsset)
	router.PUT("/assets/:id", security.Authorize("admin"), h.UpdateAsset)
	router.DELETE("/assets/:id", security.Authorize("admin"), h.DeleteAsset)
	router.PUT("/assets/:id/assign", security.Authorize("admin"), h.AssignAsset)
	router.PUT("/assets/:id/return", security.Authorize("admin"), h.ReturnAsset)
	router.PUT("/assets/:id/maintenance/start", security.Authorize("admin"), h.StartMaintenance)
	router.PUT("/assets/:id/maintenance/complete", security.Authorize("admin"), h.CompleteMaintenance)
	router.GET("/employees/:id/assets", security.Authorize("user"), h.GetAssetsByUser)
}

func (h *AssetHandler) CreateAssets(c *gin.Context) {
	var req models.AssetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	createdAssets, err := h.Service.CreateAssets(req, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, createdAssets)
}

func (h *AssetHandler) GetAssetList(c *gin.Context) {
	assets, err := h.Service.GetAssetList()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	asset, err := h.Service.GetAsset(assetID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	var req models.AssetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.Service.UpdateAsset(assetID, req, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.DeleteAsset(assetID, actorID); err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}

func (h *AssetHandler) AssignAsset(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	var req struct {
		UserID int `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.Lifecycle.Assign(assetID, req.UserID, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ReturnAsset(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.Lifecycle.Return(assetID, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) StartMaintenance(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.Lifecycle.StartMaintenance(assetID, req.Description, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset marked as under maintenance", "asset": asset})
}

func (h *AssetHandler) CompleteMaintenance(c *gin.Context) {
	assetID, ok := h.assetID(c)
	if !ok {
		return
	}

	var req struct {
		DaysTaken   *int     `json:"daysTaken"`
		Cost        *float64 `json:"cost"`
		Description string   `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	actorID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.Lifecycle.CompleteMaintenance(assetID, req.DaysTaken, req.Cost, req.Description, actorID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance completed and asset is now available", "asset": asset})
}

// GetAssetsByUser serves admins and the employee themself; other users
// cannot browse someone else's assets.
func (h *AssetHandler) GetAssetsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	currentUserID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	currentRole := roles.Role(security.CurrentRole(c))
	if currentUserID != userID && !currentRole.HasPermission(roles.Admin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized to view other users' assets"})
		return
	}

	assets, err := h.Service.GetAssetsByUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) assetID(c *gin.Context) (int, bool) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return 0, false
	}
	return assetID, true
}
