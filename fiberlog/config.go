package fiberlog

import "github.com/sirupsen/logrus"

// Config selects the logger and the request fields to emit.
// A nil Logger falls back to the logrus standard logger.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault logs the fields the registry dashboards consume.
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		RequestID,
	},
}
