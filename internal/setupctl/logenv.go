package setupctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// zlog is the process-wide logger. A console writer keeps output readable
// for an interactive provisioning tool; level is adjusted via SetLogLevel.
var zlog = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: "15:04:05",
	NoColor:    envBool("CHECKCTL_NO_COLOR", false),
}).With().Timestamp().Logger()

func init() {
	// default from env if present
	SetLogLevel(envStr("CHECKCTL_LOG_LEVEL", "info"))
}

func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zlog = zlog.Level(zerolog.DebugLevel)
	case "info":
		zlog = zlog.Level(zerolog.InfoLevel)
	case "warn", "warning":
		zlog = zlog.Level(zerolog.WarnLevel)
	case "error", "err":
		zlog = zlog.Level(zerolog.ErrorLevel)
	default:
		zlog = zlog.Level(zerolog.InfoLevel)
	}
}

func debug(format string, a ...any) { zlog.Debug().Msgf(format, a...) }
func info(format string, a ...any)  { zlog.Info().Msgf(format, a...) }
func warn(format string, a ...any)  { zlog.Warn().Msgf(format, a...) }
func errl(format string, a ...any)  { zlog.Error().Msgf(format, a...) }

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	s := strings.ToLower(v)
	return s == "1" || s == "true" || s == "yes"
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, err := fmt.Sscanf(v, "%d", &n)
		if err == nil {
			return n
		}
	}
	return def
}
