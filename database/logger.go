package database

import (
	"strings"
	"sync"

	"github.com/labstack/gommon/log"
	"github.com/xompass/vsaas-mongo/helpers"
)

var logLevels = map[string]log.Lvl{
	"DEBUG": log.DEBUG,
	"INFO":  log.INFO,
	"WARN":  log.WARN,
	"ERROR": log.ERROR,
	"OFF":   log.OFF,
}

var (
	logger     *log.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger. Its level is read once from
// MONGO_LOG_LEVEL and defaults to INFO.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.New("database")
		logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
		logger.SetLevel(ParseLogLevel(helpers.GetEnv("MONGO_LOG_LEVEL", "INFO")))
	})
	return logger
}

// ParseLogLevel maps a level name to its gommon level. Unknown names map to INFO.
func ParseLogLevel(name string) log.Lvl {
	level, ok := logLevels[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return log.INFO
	}
	return level
}
