// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// staffdesk writes request and submission events to one JSON log per day
// under `<log dir>/YYYY-MM-DD.log`.  When the operator asks for it (or the
// CLI runs with --verbose) the same events are teed, in console format, to
// stderr so they never interleave with command output on stdout.  Rotation,
// compression, and retention are handled by Lumberjack.
//
// Usage
// -----
//
//	log, err := logger.New(cfg.Log.Dir, cfg.Log.Tee)
//	if err != nil { … }
//	log.Infow("login submitted", "form", "auth/login")
//
// Notes
// -----
// • Zap core uses ISO-8601 timestamps and lowercase levels.
// • Passwords and bearer tokens are never passed to the logger.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a *zap.SugaredLogger that writes JSON to <dir>/YYYY-MM-DD.log.
// When tee == true, a console core writing to stderr is also attached.  The
// logger is installed as the process-wide default via zap.ReplaceGlobals.
func New(dir string, tee bool) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fileName := time.Now().Format("2006-01-02") + ".log"
	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, fileName),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	}

	var console io.Writer
	if tee {
		console = os.Stderr
	}
	z := build(zapcore.AddSync(fileSink), console)
	zap.ReplaceGlobals(z.Desugar())

	z.Debugw("logger online", "dir", dir, "tee", tee)
	return z, nil
}

// NewWriter builds the same encoder stack over an arbitrary sink.  Tests use
// it to capture output without touching the filesystem.
func NewWriter(w io.Writer) *zap.SugaredLogger {
	return build(zapcore.AddSync(w), nil)
}

func build(sink zapcore.WriteSyncer, console io.Writer) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.DebugLevel),
	}
	if console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(console),
			zap.InfoLevel,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.ErrorOutput(sink),
	).Sugar()
}

/*──────────────────────────── context helpers ─────────────────────────────*/

type ctxKey struct{}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global sugared logger
// when none is set.  Never returns nil.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}
	return zap.S()
}
