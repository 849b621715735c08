package employees

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/roles"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type EmployeeHandler struct {
	Service *HistoryService
}

func NewEmployeeHandler(service *HistoryService) *EmployeeHandler {
	return &EmployeeHandler{Service: service}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/employees/:id", security.Authorize("user"), h.GetProfile)
	router.GET("/employees/:id/history", security.Authorize("user"), h.GetAssetHistory)
}

func (h *EmployeeHandler) GetProfile(c *gin.Context) {
	userID, ok := h.employeeID(c)
	if !ok {
		return
	}

	profile, err := h.Service.Profile(userID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *EmployeeHandler) GetAssetHistory(c *gin.Context) {
	userID, ok := h.employeeID(c)
	if !ok {
		return
	}

	history, err := h.Service.AssetHistory(userID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

// employeeID parses the path parameter and lets an employee through only
// to their own record unless they hold the admin role.
func (h *EmployeeHandler) employeeID(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}

	currentUserID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	currentRole := roles.Role(security.CurrentRole(c))
	if currentUserID != userID && !currentRole.HasPermission(roles.Admin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized to view other employees"})
		return 0, false
	}

	return userID, true
}
