package logging

import "go.uber.org/zap"

// Debug controls whether debug logs are printed.
var Debug bool

var log = zap.NewNop().Sugar()

// Init replaces the package logger. With debug enabled a development logger
// at debug level is used, otherwise a production JSON logger.
func Init(debug bool) error {
	Debug = debug
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

// Set installs an existing logger, mostly for tests.
func Set(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	log = l
}

// L returns the package logger.
func L() *zap.SugaredLogger { return log }

// Sync flushes buffered entries.
func Sync() { _ = log.Sync() }

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		log.Debugf(format, v...)
	}
}

func Infof(format string, v ...any)  { log.Infof(format, v...) }
func Warnf(format string, v ...any)  { log.Warnf(format, v...) }
func Errorf(format string, v ...any) { log.Errorf(format, v...) }
