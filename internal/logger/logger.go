// Package logger builds the application's zap logger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger configured for env.
//
// "prod" and "staging" write JSON to stdout, anything else writes the
// human-readable console format. Stacktraces are attached from error
// level up.
func New(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}

	var encoder zapcore.Encoder
	switch env {
	case "prod", "staging":
		encCfg := zap.NewProductionEncoderConfig()
		setKeys(&encCfg)
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg := zap.NewDevelopmentEncoderConfig()
		setKeys(&encCfg)
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl)
	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return log.With(zap.String("app.env", env)), nil
}

func setKeys(c *zapcore.EncoderConfig) {
	c.TimeKey = "timestamp"
	c.EncodeTime = zapcore.ISO8601TimeEncoder
	c.LevelKey = "level"
	c.NameKey = "name"
	c.MessageKey = "msg"
	c.CallerKey = "caller"
	c.StacktraceKey = "stacktrace"
}
