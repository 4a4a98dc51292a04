// Package config resolves runtime settings from defaults, an optional YAML
// file and REMINDD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/remindd/internal/storage"
)

const (
	BackendSQLite = storage.BackendSQLite
	BackendDiskv  = storage.BackendDiskv
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	DataDir      string
	StoreBackend string
	// GrantsFile holds the recorded permission answers; empty means
	// DataDir/grants.yaml.
	GrantsFile           string
	ExactAlarmsRequired  bool
	DesktopNotifications bool
	Sound                bool
	EffectBuffer         int
	SchedulerBuffer      int
	InexactWindow        time.Duration
	ReconcileInterval    time.Duration
	LogLevel             string
}

func Default() Config {
	return Config{
		DataDir:              "~/.remindd",
		StoreBackend:         BackendSQLite,
		ExactAlarmsRequired:  true,
		DesktopNotifications: true,
		Sound:                false,
		EffectBuffer:         16,
		SchedulerBuffer:      8,
		InexactWindow:        10 * time.Minute,
		ReconcileInterval:    15 * time.Minute,
		LogLevel:             "info",
	}
}

// Load reads path (or DataDir/config.yaml when path is empty and the file
// exists), then applies environment overrides. The result has DataDir
// expanded and is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if dir := os.Getenv("REMINDD_DATA_DIR"); strings.TrimSpace(dir) != "" {
		cfg.DataDir = strings.TrimSpace(dir)
	}
	dataDir, err := homedir.Expand(cfg.DataDir)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand data dir: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dataDir)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	cfg = fromViper(v, cfg)
	cfg = FromEnv(cfg)

	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return Config{}, fmt.Errorf("config: expand data dir: %w", err)
	}
	if cfg.GrantsFile != "" {
		if cfg.GrantsFile, err = homedir.Expand(cfg.GrantsFile); err != nil {
			return Config{}, fmt.Errorf("config: expand grants file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper, base Config) Config {
	cfg := base
	if v.IsSet("data_dir") {
		cfg.DataDir = v.GetString("data_dir")
	}
	if v.IsSet("store_backend") {
		cfg.StoreBackend = strings.ToLower(v.GetString("store_backend"))
	}
	if v.IsSet("grants_file") {
		cfg.GrantsFile = v.GetString("grants_file")
	}
	if v.IsSet("exact_alarms_required") {
		cfg.ExactAlarmsRequired = v.GetBool("exact_alarms_required")
	}
	if v.IsSet("desktop_notifications") {
		cfg.DesktopNotifications = v.GetBool("desktop_notifications")
	}
	if v.IsSet("sound") {
		cfg.Sound = v.GetBool("sound")
	}
	if v.IsSet("effect_buffer") {
		cfg.EffectBuffer = v.GetInt("effect_buffer")
	}
	if v.IsSet("scheduler_buffer") {
		cfg.SchedulerBuffer = v.GetInt("scheduler_buffer")
	}
	if v.IsSet("inexact_window") {
		cfg.InexactWindow = v.GetDuration("inexact_window")
	}
	if v.IsSet("reconcile_interval") {
		cfg.ReconcileInterval = v.GetDuration("reconcile_interval")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	return cfg
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("REMINDD_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDD_STORE_BACKEND")); v != "" {
		cfg.StoreBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("REMINDD_GRANTS_FILE")); v != "" {
		cfg.GrantsFile = v
	}
	if v, ok := getEnvBool("REMINDD_EXACT_ALARMS_REQUIRED"); ok {
		cfg.ExactAlarmsRequired = v
	}
	if v, ok := getEnvBool("REMINDD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("REMINDD_SOUND"); ok {
		cfg.Sound = v
	}
	if v, ok := getEnvInt("REMINDD_EFFECT_BUFFER"); ok && v > 0 {
		cfg.EffectBuffer = v
	}
	if v, ok := getEnvInt("REMINDD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvDuration("REMINDD_INEXACT_WINDOW"); ok && v >= 0 {
		cfg.InexactWindow = v
	}
	if v, ok := getEnvDuration("REMINDD_RECONCILE_INTERVAL"); ok && v > 0 {
		cfg.ReconcileInterval = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDD_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendDiskv:
	default:
		return fmt.Errorf("%w: store backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.EffectBuffer <= 0 || c.SchedulerBuffer <= 0 {
		return fmt.Errorf("%w: buffers must be positive", ErrInvalidConfig)
	}
	if c.InexactWindow < 0 {
		return fmt.Errorf("%w: inexact window %s", ErrInvalidConfig, c.InexactWindow)
	}
	if c.ReconcileInterval <= 0 {
		return fmt.Errorf("%w: reconcile interval %s", ErrInvalidConfig, c.ReconcileInterval)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) GrantsPath() string {
	if c.GrantsFile != "" {
		return c.GrantsFile
	}
	return filepath.Join(c.DataDir, "grants.yaml")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "remindd.log")
}

// Level is the slog level for LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(raw string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, raw)
	}
	return lvl, nil
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

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
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
