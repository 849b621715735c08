package container

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/thejas-1999/Assets-Management/internal/assets"
	auditLogRepo "github.com/thejas-1999/Assets-Management/internal/auditlog"
	"github.com/thejas-1999/Assets-Management/internal/employees"
	"github.com/thejas-1999/Assets-Management/internal/repository"
	"github.com/thejas-1999/Assets-Management/internal/requests"
	"github.com/thejas-1999/Assets-Management/internal/settings"
	"github.com/thejas-1999/Assets-Management/internal/users"
	"github.com/thejas-1999/Assets-Management/pkg/auditlog"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

type Container struct {
	Repository      *repository.Repository
	AuditWriter     *auditlog.Writer
	LoginHandler    *security.LoginHandler
	AssetHandler    *assets.AssetHandler
	EmployeeHandler *employees.EmployeeHandler
	RequestHandler  *requests.RequestHandler
	UserHandler     *users.UsersHandler
	AuditLogHandler *auditLogRepo.AssetLogHandler
	SettingsHandler *settings.SettingsHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	logRepo := auditLogRepo.NewRepository(repo)
	auditWriter := auditlog.NewWriter(logRepo, logger)

	settingsRepo := settings.NewRepository(repo)
	userRepo := users.NewRepository(repo)
	assetsRepo := assets.NewRepository(repo)
	requestsRepo := requests.NewRepository(repo)

	assetService := assets.NewAssetService(repo, assetsRepo, settingsRepo, auditWriter, logger)
	lifecycleService := assets.NewLifecycleService(repo, assetsRepo, userRepo, auditWriter, logger)
	historyService := employees.NewHistoryService(logRepo, userRepo, assetsRepo, logger)
	requestService := requests.NewRequestService(requestsRepo, settingsRepo, assetsRepo, logger)

	return &Container{
		Repository:      repo,
		AuditWriter:     auditWriter,
		LoginHandler:    security.NewLoginHandler(repo),
		AssetHandler:    assets.NewAssetHandler(assetService, lifecycleService),
		EmployeeHandler: employees.NewEmployeeHandler(historyService),
		RequestHandler:  requests.NewRequestHandler(requestService),
		UserHandler:     users.NewHandler(userRepo, assetsRepo, requestsRepo),
		AuditLogHandler: auditLogRepo.NewHandler(logRepo),
		SettingsHandler: settings.NewHandler(settingsRepo),
	}
}
