package logger

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "clapperboard.log"

// NOOPLogger discards everything. Used as the default until a real logger is injected.
var NOOPLogger = zap.NewNop().Sugar()

type Options struct {
	// Path is the directory for the rotated log file. Empty disables file output.
	Path  string
	Debug bool
	// Output receives the console stream, os.Stdout when nil.
	Output io.Writer
}

func New(opts Options) (*zap.SugaredLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if opts.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if opts.Debug {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(out), level),
	}

	if opts.Path != "" {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, err
		}
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Path, logFileName),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoder, fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar(), nil
}
