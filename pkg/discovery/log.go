package discovery

import "go.uber.org/zap"

// LoggerName names the logger discovery diagnostics are written to.
const LoggerName = "ipfs-provider"

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger. Applications may replace it
// with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// SetDebug toggles debug output of the default logger. It has no effect on
// a logger installed by the application.
func SetDebug(on bool) {
	if on {
		level.SetLevel(zap.DebugLevel)
		return
	}
	level.SetLevel(zap.InfoLevel)
}

func logger() *zap.Logger {
	return zap.L().Named(LoggerName)
}
