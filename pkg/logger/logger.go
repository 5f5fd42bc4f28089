// Package logger содержит настройку логгера.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Варианты вывода логов
const (
	OutputStdout = "stdout"
	OutputFile   = "file"
	OutputBoth   = "both"
)

// Config представляет настройки логгера
type Config struct {
	Level   string
	Output  string
	Path    string
	DataDir string
}

// New создает новый логгер
func New(cfg Config) (*zap.Logger, error) {
	// Настраиваем уровень логирования
	level := parseLevel(cfg.Level)

	// Настраиваем кодировщик
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core

	// Консольный вывод
	if cfg.Output != OutputFile {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	// Файловый вывод
	if cfg.Output == OutputFile || cfg.Output == OutputBoth {
		logPath, err := resolvePath(cfg)
		if err != nil {
			return nil, err
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   logPath,
				MaxSize:    100, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}),
			level,
		))
	}

	// Объединяем выводы
	core := zapcore.NewTee(cores...)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// parseLevel разбирает уровень логирования
func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

// resolvePath определяет путь к файлу логов и создает директорию
func resolvePath(cfg Config) (string, error) {
	logPath := cfg.Path
	if logPath == "" {
		dataDir := cfg.DataDir
		if dataDir == "" {
			dataDir = "logs"
		}
		logPath = filepath.Join(dataDir, "app.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return logPath, nil
}
