package update

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type RuntimeConfig struct {
	StorageDriver        string
	StorageDSN           string
	RedisPrefix          string
	NotificationDuration time.Duration
	DesktopNotifications bool
	SchedulerBuffer      int
	LogLevel             string
	LogFile              string
	LogJSON              bool
	SkipOnboarding       bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StorageDriver:        "sqlite",
		RedisPrefix:          "todod:",
		NotificationDuration: 3 * time.Second,
		DesktopNotifications: false,
		SchedulerBuffer:      16,
		LogLevel:             "info",
		LogFile:              "todod.log",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOD_STORAGE"); ok {
		cfg.StorageDriver = v
	}
	if v, ok := getEnvString("TODOD_DSN"); ok {
		cfg.StorageDSN = v
	}
	if v, ok := getEnvString("TODOD_REDIS_PREFIX"); ok {
		cfg.RedisPrefix = v
	}
	if v, ok := getEnvInt("TODOD_NOTIFICATION_SECONDS"); ok && v > 0 {
		cfg.NotificationDuration = time.Duration(v) * time.Second
	}
	if v, ok := getEnvBool("TODOD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TODOD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("TODOD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	// An explicitly empty TODOD_LOG_FILE disables logging.
	if v, set := os.LookupEnv("TODOD_LOG_FILE"); set {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvBool("TODOD_LOG_JSON"); ok {
		cfg.LogJSON = v
	}
	if v, ok := getEnvBool("TODOD_SKIP_ONBOARDING"); ok {
		cfg.SkipOnboarding = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
