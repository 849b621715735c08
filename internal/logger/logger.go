package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the zap logger every component shares. APP_ENV=production
// switches to the JSON production encoder; anything else gets the readable
// development console output.
func NewLogger() *zap.Logger {
	loggerConfig := zap.NewDevelopmentConfig()
	if os.Getenv("APP_ENV") == "production" {
		loggerConfig = zap.NewProductionConfig()
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if err != nil {
		panic(err)
	}

	return logger
}
