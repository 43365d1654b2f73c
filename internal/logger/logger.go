package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config 日志配置
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json 或 console
	Output io.Writer // 默认 os.Stdout
}

var (
	mu        sync.RWMutex
	debugMode = false
	log       = newLogger(Config{})
)

func newLogger(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 根据配置重建全局日志实例
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(cfg)
	debugMode = log.GetLevel() <= zerolog.DebugLevel
}

// SetDebug 设置是否开启调试模式
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	debugMode = debug
	if debug {
		log = log.Level(zerolog.DebugLevel)
	} else if log.GetLevel() < zerolog.InfoLevel {
		log = log.Level(zerolog.InfoLevel)
	}
}

// Logger 返回底层 zerolog 实例，用于输出结构化字段
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Info 打印信息日志
func Info(format string, v ...interface{}) {
	l := Logger()
	l.Info().Msgf(format, v...)
}

// Debug 打印调试日志
func Debug(format string, v ...interface{}) {
	mu.RLock()
	enabled := debugMode
	mu.RUnlock()
	if enabled {
		l := Logger()
		l.Debug().Msgf(format, v...)
	}
}

// Warn 打印警告日志
func Warn(format string, v ...interface{}) {
	l := Logger()
	l.Warn().Msgf(format, v...)
}

// Error 打印错误日志
func Error(format string, v ...interface{}) {
	l := Logger()
	l.Error().Msgf(format, v...)
}

// Fatal 打印错误日志并退出
func Fatal(format string, v ...interface{}) {
	l := Logger()
	l.Fatal().Msgf(format, v...)
}
