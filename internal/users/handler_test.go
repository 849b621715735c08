package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
	"github.com/thejas-1999/Assets-Management/pkg/roles"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (int, error) {
	args := m.Called(req, hashedPassword)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *models.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

type MockAssetCounter struct {
	mock.Mock
}

func (m *MockAssetCounter) CountAssetsByStatus() (map[string]int, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockAssetCounter) GetCurrentAssets(userID int) ([]models.Asset, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

type MockRequestCounter struct {
	mock.Mock
}

func (m *MockRequestCounter) CountPendingRequests() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func setupTestContext(role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", role)
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.CreateUserRequest{
				Name:     "Alice",
				Email:    "alice@example.com",
				Password: "secret123",
			},
			setupMock: func(repo *MockUserRepository) {
				repo.On("PersistUser", mock.Anything, mock.Anything).Return(7, nil)
				repo.On("GetUser", 7).Return(&models.User{ID: 7, Name: "Alice", Role: roles.User}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "password too short",
			payload: models.CreateUserRequest{
				Name:     "Alice",
				Email:    "alice@example.com",
				Password: "short",
			},
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			payload: models.CreateUserRequest{
				Name:     "Alice",
				Email:    "alice@example.com",
				Password: "secret123",
				Role:     "overlord",
			},
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			payload: models.CreateUserRequest{
				Name:     "Alice",
				Email:    "alice@example.com",
				Password: "secret123",
			},
			setupMock: func(repo *MockUserRepository) {
				repo.On("PersistUser", mock.Anything, mock.Anything).
					Return(0, custom_error.WrapDBError("Email alice@example.com is already registered", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo, new(MockAssetCounter), new(MockRequestCounter))

			c, w := setupTestContext("superadmin")
			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserSelfAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo, new(MockAssetCounter), new(MockRequestCounter))

	mockRepo.On("GetUser", 1).Return(&models.User{ID: 1, Name: "Alice"}, nil)

	c, w := setupTestContext("user")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/1", nil)

	handler.GetUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserForbiddenForOtherUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo, new(MockAssetCounter), new(MockRequestCounter))

	c, w := setupTestContext("user")
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/2", nil)

	handler.GetUser(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "GetUser", mock.Anything)
}

func TestUpdateUserRoleRequiresSuperadmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo, new(MockAssetCounter), new(MockRequestCounter))

	role := "admin"
	body, _ := json.Marshal(models.UpdateUserRequest{Role: &role})

	c, w := setupTestContext("admin")
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/users/2", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo, new(MockAssetCounter), new(MockRequestCounter))

	c, w := setupTestContext("superadmin")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)

	handler.DeleteUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "DeleteUser", mock.Anything)
}

func TestGetDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	mockAssets := new(MockAssetCounter)
	mockRequests := new(MockRequestCounter)
	handler := NewHandler(mockRepo, mockAssets, mockRequests)

	mockAssets.On("CountAssetsByStatus").Return(map[string]int{"available": 3, "assigned": 2}, nil)
	mockRepo.On("CountUsers").Return(12, nil)
	mockRequests.On("CountPendingRequests").Return(4, nil)

	c, w := setupTestContext("admin")
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	handler.GetDashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(5), payload["totalAssets"])
	assert.Equal(t, float64(12), payload["totalEmployees"])
	assert.Equal(t, float64(4), payload["pendingRequests"])
}
