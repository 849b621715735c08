package employees

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/metadata"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type MockLogSource struct {
	mock.Mock
}

func (m *MockLogSource) GetUserLogs(userID int) ([]models.FlatAssetLogRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlatAssetLogRecord), args.Error(1)
}

type MockEmployeeDirectory struct {
	mock.Mock
}

func (m *MockEmployeeDirectory) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockAssetSource struct {
	mock.Mock
}

func (m *MockAssetSource) GetCurrentAssets(userID int) ([]models.Asset, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func newHistoryFixture() (*HistoryService, *MockLogSource, *MockEmployeeDirectory, *MockAssetSource) {
	logs := new(MockLogSource)
	users := new(MockEmployeeDirectory)
	assets := new(MockAssetSource)
	service := NewHistoryService(logs, users, assets, zap.NewNop())
	return service, logs, users, assets
}

func logRecord(action string, assetID, targetUser int, createdAt time.Time) models.FlatAssetLogRecord {
	record := models.FlatAssetLogRecord{
		Action:    action,
		CreatedAt: createdAt,
		AssetID:   sql.NullInt64{Int64: int64(assetID), Valid: true},
		AssetName: sql.NullString{String: "ThinkPad T14", Valid: true},
	}
	if targetUser != 0 {
		record.TargetUserID = sql.NullInt64{Int64: int64(targetUser), Valid: true}
		record.TargetUserName = sql.NullString{String: "Alice", Valid: true}
	}
	if action == models.ActionAssigned {
		record.AssignedDate = sql.NullTime{Time: createdAt, Valid: true}
	}
	if action == models.ActionReturned {
		record.ReturnedDate = sql.NullTime{Time: createdAt, Valid: true}
	}
	return record
}

func TestAssetHistoryMergesIntervalPerAssetAndUser(t *testing.T) {
	service, logs, users, _ := newHistoryFixture()

	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	t3 := t1.Add(96 * time.Hour)

	users.On("GetUser", 7).Return(&models.User{ID: 7, Name: "Alice"}, nil)
	logs.On("GetUserLogs", 7).Return([]models.FlatAssetLogRecord{
		logRecord(models.ActionAssigned, 42, 7, t1),
		logRecord(models.ActionAssigned, 42, 7, t2),
		logRecord(models.ActionReturned, 42, 7, t3),
	}, nil)

	history, err := service.AssetHistory(7)

	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "ThinkPad T14", history[0].AssetName)
	assert.Equal(t, t1, *history[0].AssignedDate)
	assert.Equal(t, t3, *history[0].ReturnedDate)
}

func TestAssetHistoryOrdersNewestAssignmentFirst(t *testing.T) {
	service, logs, users, _ := newHistoryFixture()

	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	older := logRecord(models.ActionAssigned, 41, 7, t1)
	newer := logRecord(models.ActionAssigned, 42, 7, t2)
	newer.AssetName = sql.NullString{String: "Dell U2723", Valid: true}

	users.On("GetUser", 7).Return(&models.User{ID: 7}, nil)
	logs.On("GetUserLogs", 7).Return([]models.FlatAssetLogRecord{older, newer}, nil)

	history, err := service.AssetHistory(7)

	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "Dell U2723", history[0].AssetName)
	assert.Equal(t, "ThinkPad T14", history[1].AssetName)
}

func TestAssetHistoryPlaceholdersForDeletedReferences(t *testing.T) {
	service, logs, users, _ := newHistoryFixture()

	orphan := models.FlatAssetLogRecord{
		Action:    models.ActionAssigned,
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	users.On("GetUser", 7).Return(&models.User{ID: 7}, nil)
	logs.On("GetUserLogs", 7).Return([]models.FlatAssetLogRecord{orphan}, nil)

	history, err := service.AssetHistory(7)

	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "Unknown Asset", history[0].AssetName)
	assert.Equal(t, "System", history[0].PerformedBy)
	assert.Equal(t, "System", history[0].TargetUser)
	// No assignedDate on the log row, so the write time stands in.
	assert.Equal(t, orphan.CreatedAt, *history[0].AssignedDate)
}

func TestAssetHistorySkipsNonLifecycleActions(t *testing.T) {
	service, logs, users, _ := newHistoryFixture()

	created := logRecord(models.ActionCreated, 42, 0, time.Now())
	updated := logRecord(models.ActionUpdated, 42, 0, time.Now())

	users.On("GetUser", 7).Return(&models.User{ID: 7}, nil)
	logs.On("GetUserLogs", 7).Return([]models.FlatAssetLogRecord{created, updated}, nil)

	history, err := service.AssetHistory(7)

	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssetHistoryUnknownUser(t *testing.T) {
	service, logs, users, _ := newHistoryFixture()

	users.On("GetUser", 99).Return(nil, custom_error.NewNotFound("user", 99))

	_, err := service.AssetHistory(99)

	assert.Error(t, err)
	assert.Equal(t, 404, custom_error.StatusCode(err))
	logs.AssertNotCalled(t, "GetUserLogs", mock.Anything)
}

func TestProfileCombinesCurrentAssetsAndHistory(t *testing.T) {
	service, logs, users, assets := newHistoryFixture()

	users.On("GetUser", 7).Return(&models.User{ID: 7, Name: "Alice", Email: "alice@example.com", Designation: "Engineer"}, nil)
	assets.On("GetCurrentAssets", 7).Return([]models.Asset{
		{ID: 42, Name: "ThinkPad T14", Category: "Laptop", SerialNumber: "SN1", Status: metadata.StatusAssigned},
	}, nil)
	logs.On("GetUserLogs", 7).Return([]models.FlatAssetLogRecord{
		logRecord(models.ActionAssigned, 42, 7, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
	}, nil)

	profile, err := service.Profile(7)

	assert.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	assert.Len(t, profile.CurrentAssets, 1)
	assert.Equal(t, "SN1", profile.CurrentAssets[0].SerialNumber)
	assert.Len(t, profile.AssetHistory, 1)
}
