package cmd

import "github.com/harrison/ctxpack/internal/models"

// runLogger is the logging surface shared by the console and file loggers
type runLogger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogProgress(current, total int, path string)
	LogSummary(result *models.RunResult)
}

// multiLogger forwards every message to all of its loggers
type multiLogger struct {
	loggers []runLogger
}

func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

func (ml *multiLogger) LogProgress(current, total int, path string) {
	for _, l := range ml.loggers {
		l.LogProgress(current, total, path)
	}
}

func (ml *multiLogger) LogSummary(result *models.RunResult) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}
