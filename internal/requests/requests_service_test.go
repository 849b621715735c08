package requests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) InsertRequest(userID int, req models.SubmitAssetRequest) (int, error) {
	args := m.Called(userID, req)
	return args.Int(0), args.Error(1)
}

func (m *MockRequestStore) GetRequest(requestID int) (*models.AssetRequest, error) {
	args := m.Called(requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetRequest), args.Error(1)
}

func (m *MockRequestStore) GetRequests() ([]models.AssetRequest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssetRequest), args.Error(1)
}

func (m *MockRequestStore) GetRequestsByUser(userID int) ([]models.AssetRequest, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssetRequest), args.Error(1)
}

func (m *MockRequestStore) DecideRequest(requestID int, status string, responseNote string, handledBy int, handledAt time.Time) error {
	args := m.Called(requestID, status, responseNote, handledBy, handledAt)
	return args.Error(0)
}

type MockAssetTypeSource struct {
	mock.Mock
}

func (m *MockAssetTypeSource) AssetTypes() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAssetChecker struct {
	mock.Mock
}

func (m *MockAssetChecker) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func newRequestFixture() (*RequestService, *MockRequestStore, *MockAssetTypeSource, *MockAssetChecker) {
	store := new(MockRequestStore)
	types := new(MockAssetTypeSource)
	assets := new(MockAssetChecker)
	service := NewRequestService(store, types, assets, zap.NewNop())
	return service, store, types, assets
}

func TestSubmitRequest(t *testing.T) {
	service, store, types, _ := newRequestFixture()

	req := models.SubmitAssetRequest{AssetType: "Laptop", Reason: "Current one is failing"}

	types.On("AssetTypes").Return([]string{"Laptop", "Monitor"}, nil)
	store.On("InsertRequest", 7, req).Return(5, nil)
	store.On("GetRequest", 5).Return(&models.AssetRequest{ID: 5, Status: models.RequestStatusPending}, nil)

	request, err := service.Submit(7, req)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	store.AssertExpectations(t)
}

func TestSubmitRequestUnknownAssetType(t *testing.T) {
	service, store, types, _ := newRequestFixture()

	types.On("AssetTypes").Return([]string{"Monitor"}, nil)

	_, err := service.Submit(7, models.SubmitAssetRequest{AssetType: "Laptop"})

	assert.Error(t, err)
	assert.Equal(t, 400, custom_error.StatusCode(err))
	store.AssertNotCalled(t, "InsertRequest", mock.Anything, mock.Anything)
}

func TestSubmitRequestMissingAsset(t *testing.T) {
	service, store, types, assets := newRequestFixture()

	assetID := 42
	types.On("AssetTypes").Return([]string{"Laptop"}, nil)
	assets.On("GetAsset", 42).Return(nil, custom_error.NewNotFound("asset", 42))

	_, err := service.Submit(7, models.SubmitAssetRequest{AssetType: "Laptop", AssetID: &assetID})

	assert.Error(t, err)
	assert.Equal(t, 404, custom_error.StatusCode(err))
	store.AssertNotCalled(t, "InsertRequest", mock.Anything, mock.Anything)
}

func TestDecideRequestApproves(t *testing.T) {
	service, store, _, _ := newRequestFixture()

	store.On("DecideRequest", 5, models.RequestStatusApproved, "Pick it up at IT", 1, mock.AnythingOfType("time.Time")).Return(nil)
	store.On("GetRequest", 5).Return(&models.AssetRequest{ID: 5, Status: models.RequestStatusApproved}, nil)

	request, err := service.Decide(5, models.DecideAssetRequest{Status: models.RequestStatusApproved, ResponseNote: "Pick it up at IT"}, 1)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	store.AssertExpectations(t)
}

func TestDecideRequestRejectsBogusStatus(t *testing.T) {
	service, store, _, _ := newRequestFixture()

	_, err := service.Decide(5, models.DecideAssetRequest{Status: "maybe"}, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "approved or rejected")
	store.AssertNotCalled(t, "DecideRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecideRequestOnlyOnce(t *testing.T) {
	service, store, _, _ := newRequestFixture()

	store.On("DecideRequest", 5, models.RequestStatusRejected, "", 1, mock.AnythingOfType("time.Time")).
		Return(custom_error.NewValidation("Request has already been approved"))

	_, err := service.Decide(5, models.DecideAssetRequest{Status: models.RequestStatusRejected}, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already been approved")
}
