// Package logger provides structured logging for seqkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The frayed core stays
// log-free; logging attaches to streams via the instrument package and
// inside the sources.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("kafkastream")
//	log.Info("stream opened", logger.Fields(logger.FieldTopic, topic))
package logger
