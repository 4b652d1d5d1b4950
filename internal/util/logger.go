package util

import (
	"strings"

	"go.uber.org/zap"
)

// Production gets the JSON logger at info level, anything else the console
// logger at debug level. Every entry carries the app name.
func NewLogger(env string) *zap.SugaredLogger {
	var logger *zap.Logger

	if strings.EqualFold(env, "production") {
		logger = zap.Must(zap.NewProduction())
	} else {
		logger = zap.Must(zap.NewDevelopment())
	}

	return logger.Sugar().With("app", GetAppName())
}
