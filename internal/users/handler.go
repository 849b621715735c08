package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
	"github.com/thejas-1999/Assets-Management/pkg/roles"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

// AssetCounter feeds the dashboard totals and the profile asset list.
type AssetCounter interface {
	CountAssetsByStatus() (map[string]int, error)
	GetCurrentAssets(userID int) ([]models.Asset, error)
}

// RequestCounter feeds the dashboard pending request total.
type RequestCounter interface {
	CountPendingRequests() (int, error)
}

type UsersHandler struct {
	Repository UserRepository
	Assets     AssetCounter
	Requests   RequestCounter
}

func NewHandler(r UserRepository, assets AssetCounter, requests RequestCounter) *UsersHandler {
	return &UsersHandler{
		Repository: r,
		Assets:     assets,
		Requests:   requests,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", security.Authorize("superadmin"), h.RegisterUser)
	router.GET("/users", security.Authorize("admin"), h.GetUserList)
	router.GET("/users/:id", security.Authorize("user"), h.GetUser)
	router.PATCH("/users/:id", security.Authorize("user"), h.UpdateUser)
	router.DELETE("/users/:id", security.Authorize("superadmin"), h.DeleteUser)
	router.GET("/profile", security.Authorize("user"), h.GetProfile)
	router.PUT("/profile", security.Authorize("user"), h.UpdateProfile)
	router.GET("/dashboard", security.Authorize("admin"), h.GetDashboard)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}

	if req.Role != "" && !roles.Role(req.Role).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role value"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID, err := h.Repository.PersistUser(req, hashedPassword)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get created user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if !h.isAllowed(c, userID, roles.Admin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this resource"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if !h.isAllowed(c, userID, roles.Admin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this resource"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	// Role changes stay with superadmins regardless of who edits.
	if req.Role != nil && !roles.Role(security.CurrentRole(c)).HasPermission(roles.SuperAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a superadmin can change user roles"})
		return
	}

	h.applyUserUpdate(c, userID, req)
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
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
	if currentUserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	if err := h.Repository.DeleteUser(userID); err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *UsersHandler) GetProfile(c *gin.Context) {
	currentUserID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Repository.GetUser(currentUserID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	assets, err := h.Assets.GetCurrentAssets(currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get assigned assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           user,
		"assignedAssets": assets,
	})
}

// UpdateProfile lets a user edit their own record. The role field is
// ignored here even for admins; roles move through PATCH /users/:id.
func (h *UsersHandler) UpdateProfile(c *gin.Context) {
	currentUserID, err := security.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	req.Role = nil

	h.applyUserUpdate(c, currentUserID, req)
}

func (h *UsersHandler) GetDashboard(c *gin.Context) {
	assetCounts, err := h.Assets.CountAssetsByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to build dashboard", "details": err.Error()})
		return
	}

	totalAssets := 0
	for _, count := range assetCounts {
		totalAssets += count
	}

	totalEmployees, err := h.Repository.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to build dashboard", "details": err.Error()})
		return
	}

	pendingRequests, err := h.Requests.CountPendingRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to build dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalAssets":     totalAssets,
		"assetsByStatus":  assetCounts,
		"totalEmployees":  totalEmployees,
		"pendingRequests": pendingRequests,
	})
}

func (h *UsersHandler) applyUserUpdate(c *gin.Context, userID int, req models.UpdateUserRequest) {
	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	changes := &models.UserChanges{
		Name:        req.Name,
		Email:       req.Email,
		Designation: req.Designation,
		Phone:       req.Phone,
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		passwordHash := string(hashedPassword)
		changes.PasswordHash = &passwordHash
	}

	if req.Role != nil && *req.Role != string(user.Role) {
		if !roles.Role(*req.Role).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role value"})
			return
		}
		role := *req.Role
		changes.Role = &role
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		c.AbortWithStatusJSON(custom_error.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	updatedUser, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get updated user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

// isAllowed lets a user through to their own record, anyone else needs
// the given role.
func (h *UsersHandler) isAllowed(c *gin.Context, userID int, required roles.Role) bool {
	currentUserID, err := security.CurrentUserID(c)
	if err != nil {
		return false
	}
	if currentUserID == userID {
		return true
	}
	return roles.Role(security.CurrentRole(c)).HasPermission(required)
}
