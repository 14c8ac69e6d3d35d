package pathmgr

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog with a rotating file sink and per-site rate limiting,
// so a state machine stuck oscillating between two states cannot flood the
// log the way a bare slog.Warn call in a hot tick loop would.
type Logger struct {
	*slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// LogConfig controls where and how verbosely the manager logs.
type LogConfig struct {
	Path     string // rotating log file path; when empty, lumberjack writes <process name>-lumberjack.log in the OS temp directory
	Level    string // debug, info, warn, error
	MaxSizeMB int
	MaxAgeDays int
}

// NewLogger constructs a Logger backed by a JSON slog handler writing to a
// lumberjack-rotated file.
func NewLogger(cfg LogConfig) *Logger {
	w := &lumberjack.Logger{
		Filename: cfg.Path,
		MaxSize:  firstNonZero(cfg.MaxSizeMB, 32),
		MaxAge:   firstNonZero(cfg.MaxAgeDays, 14),
		Compress: true,
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return &Logger{
		Logger:   slog.New(h),
		limiters: make(map[string]*rate.Limiter),
	}
}

func firstNonZero(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const warnRateLimitInterval = 5 * time.Second

// WarnRateLimited logs a warning at most once per warnRateLimitInterval for
// a given key, mirroring the 5-second throttle the reference path manager
// applies to its "too acute" and "no waypoints" warnings.
func (l *Logger) WarnRateLimited(key, msg string, args ...any) {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(warnRateLimitInterval), 1)
		l.limiters[key] = lim
	}
	allow := lim.Allow()
	l.mu.Unlock()

	if allow {
		l.Warn(msg, args...)
	}
}
