package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "flight_booking"

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel is used when the configured level does not parse.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(levelStr))
	if err != nil {
		return defaultZapLevel
	}
	return lvl
}

// newEncoder returns a JSON encoder for log shipping or a console encoder
// without timestamps for local runs.
func newEncoder(encoding string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if encoding == JSONEncoding {
		cfg.TimeKey = "ts"
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newCore(w io.Writer, level zapcore.Level, encoding string) zapcore.Core {
	ws := zapcore.Lock(zapcore.AddSync(w))
	return zapcore.NewCore(newEncoder(encoding), ws, zap.NewAtomicLevelAt(level))
}

func newZapLoggerTo(w io.Writer, levelStr, encoding string) *Logger {
	opts := []zap.Option{zap.AddCaller()}
	if encoding == JSONEncoding {
		opts = append(opts,
			zap.AddStacktrace(zapcore.ErrorLevel),
			zap.Fields(zap.String("service", serviceName)),
		)
	}
	core := newCore(w, toZapLevel(levelStr), encoding)
	return &Logger{SugaredLogger: zap.New(core, opts...).Sugar()}
}

// newZapLogger builds the process logger on stdout.
func newZapLogger(levelStr, encoding string) *Logger {
	return newZapLoggerTo(os.Stdout, levelStr, encoding)
}
