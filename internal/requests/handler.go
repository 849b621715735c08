package requests

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type RequestHandler struct {
	Service *RequestService
}

func NewRequestHandler(service *RequestService) *RequestHandler {
	return &RequestHandler{Service: service}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/requests", security.Authorize("user"), h.SubmitRequest)
	router.GET("/requests/my", security.Authorize("user"), h.GetMyRequests)
	router.GET("/requests", security.Authorize("admin"), h.GetRequests)
	router.PUT("/requests/:id", security.Authorize("admin"), h.DecideRequest)
}

func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var req models.SubmitAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Asset type is required"})
		return
	}

	userID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.Service.Submit(userID, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.Service.GetRequestsByUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetRequests(c *gin.Context) {
	requests, err := h.Service.GetRequests()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) DecideRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var decision models.DecideAssetRequest
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	handledBy, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.Service.Decide(requestID, decision, handledBy)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}
