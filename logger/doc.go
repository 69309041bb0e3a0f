// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields. Logs go to stderr by
// default so that plans written to stdout stay machine readable.
//
// # Configuration
//
//	log:
//	  level: "info"
//	  format: "json"
//	  components:
//	    planner: "debug"
//
// # Usage
//
//	log := logger.Get("planner")
//	log.Info("plan built", logger.Fields(logger.FieldBatches, 3))
package logger
