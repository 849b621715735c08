package assets

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/metadata"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetStore) GetAssetList() ([]models.Asset, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetStore) GetAssetsByUser(userID int) ([]models.Asset, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetStore) InsertAsset(tx *goqu.TxDatabase, req models.AssetCreateRequest, serial string) (int, error) {
	args := m.Called(tx, req, serial)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetStore) UpdateAsset(tx *goqu.TxDatabase, assetID int, changes goqu.Record) error {
	args := m.Called(tx, assetID, changes)
	return args.Error(0)
}

func (m *MockAssetStore) DeleteAsset(tx *goqu.TxDatabase, assetID int) error {
	args := m.Called(tx, assetID)
	return args.Error(0)
}

type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) AssetTypes() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newAssetFixture() (*AssetService, *stubTxRunner, *MockAssetStore, *MockSettingsStore, *MockAuditWriter) {
	db := &stubTxRunner{}
	store := new(MockAssetStore)
	settings := new(MockSettingsStore)
	audit := new(MockAuditWriter)
	service := NewAssetService(db, store, settings, audit, zap.NewNop())
	return service, db, store, settings, audit
}

func laptopRequest(serials []string) models.AssetCreateRequest {
	return models.AssetCreateRequest{
		Name:          "ThinkPad T14",
		Category:      "Laptop",
		SerialNumbers: serials,
		Quantity:      len(serials),
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PurchaseValue: 1200,
	}
}

func TestCreateAssetsFansOutPerSerial(t *testing.T) {
	service, _, store, settings, audit := newAssetFixture()

	req := laptopRequest([]string{"SN1", "SN2"})

	settings.On("AssetTypes").Return([]string{"Laptop", "Monitor"}, nil)
	store.On("InsertAsset", mock.Anything, req, "SN1").Return(10, nil)
	store.On("InsertAsset", mock.Anything, req, "SN2").Return(11, nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entry models.AssetLog) bool {
		return entry.Action == models.ActionCreated
	})).Return(nil).Twice()
	store.On("GetAsset", 10).Return(&models.Asset{ID: 10, SerialNumber: "SN1", Status: metadata.StatusAvailable}, nil)
	store.On("GetAsset", 11).Return(&models.Asset{ID: 11, SerialNumber: "SN2", Status: metadata.StatusAvailable}, nil)

	created, err := service.CreateAssets(req, 1)

	assert.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, "SN1", created[0].SerialNumber)
	assert.Equal(t, "SN2", created[1].SerialNumber)
	store.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestCreateAssetsQuantityMismatch(t *testing.T) {
	service, db, _, _, _ := newAssetFixture()

	req := laptopRequest([]string{"SN1", "SN2"})
	req.Quantity = 3

	_, err := service.CreateAssets(req, 1)

	assert.Error(t, err)
	assert.Equal(t, 400, custom_error.StatusCode(err))
	assert.Equal(t, 0, db.calls)
}

func TestCreateAssetsDuplicateSerialInRequest(t *testing.T) {
	service, db, _, _, _ := newAssetFixture()

	_, err := service.CreateAssets(laptopRequest([]string{"SN1", "SN1"}), 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SN1")
	assert.Equal(t, 0, db.calls)
}

func TestCreateAssetsUnknownCategory(t *testing.T) {
	service, _, _, settings, _ := newAssetFixture()

	settings.On("AssetTypes").Return([]string{"Monitor"}, nil)

	req := laptopRequest([]string{"SN1"})
	_, err := service.CreateAssets(req, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid category")
}

func TestCreateAssetsDuplicateSerialInDatabaseRollsBack(t *testing.T) {
	service, _, store, settings, audit := newAssetFixture()

	req := laptopRequest([]string{"SN1", "SN2"})

	settings.On("AssetTypes").Return([]string{"Laptop"}, nil)
	store.On("InsertAsset", mock.Anything, req, "SN1").Return(10, nil)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("InsertAsset", mock.Anything, req, "SN2").
		Return(0, custom_error.WrapDBError("duplicate serial number SN2", "23505"))

	_, err := service.CreateAssets(req, 1)

	assert.Error(t, err)
	assert.Equal(t, 409, custom_error.StatusCode(err))
	store.AssertNotCalled(t, "GetAsset", mock.Anything)
}

func TestUpdateAssetValidatesStatus(t *testing.T) {
	service, _, store, _, _ := newAssetFixture()

	store.On("GetAsset", 42).Return(&models.Asset{ID: 42}, nil)

	bogus := "broken"
	_, err := service.UpdateAsset(42, models.AssetUpdateRequest{Status: &bogus}, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid status value")
}

func TestUpdateAssetNotFound(t *testing.T) {
	service, db, store, _, _ := newAssetFixture()

	store.On("GetAsset", 42).Return(nil, custom_error.NewNotFound("asset", 42))

	_, err := service.UpdateAsset(42, models.AssetUpdateRequest{}, 1)

	assert.Error(t, err)
	assert.Equal(t, 404, custom_error.StatusCode(err))
	assert.Equal(t, 0, db.calls)
}

func TestUpdateAssetAppliesChanges(t *testing.T) {
	service, _, store, settings, audit := newAssetFixture()

	store.On("GetAsset", 42).Return(&models.Asset{ID: 42, Name: "Old name"}, nil)
	settings.On("AssetTypes").Return([]string{"Laptop"}, nil)

	name := "New name"
	category := "Laptop"
	store.On("UpdateAsset", mock.Anything, 42, mock.MatchedBy(func(changes goqu.Record) bool {
		return changes["name"] == "New name" && changes["category"] == "Laptop"
	})).Return(nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entry models.AssetLog) bool {
		return entry.Action == models.ActionUpdated
	})).Return(nil)

	_, err := service.UpdateAsset(42, models.AssetUpdateRequest{Name: &name, Category: &category}, 1)

	assert.NoError(t, err)
	store.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestDeleteAssetWritesAuditFirst(t *testing.T) {
	service, _, store, _, audit := newAssetFixture()

	store.On("GetAsset", 42).Return(&models.Asset{ID: 42, Name: "ThinkPad", SerialNumber: "SN1"}, nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entry models.AssetLog) bool {
		return entry.Action == models.ActionDeleted &&
			entry.Note == "Asset deleted: ThinkPad with serial SN1"
	})).Return(nil)
	store.On("DeleteAsset", mock.Anything, 42).Return(nil)

	err := service.DeleteAsset(42, 1)

	assert.NoError(t, err)
	store.AssertExpectations(t)
	audit.AssertExpectations(t)
}
