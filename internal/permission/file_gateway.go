package permission

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

// Grants is the on-disk permission record. The user edits it outside the app,
// the same way OS permissions are changed in system settings.
type Grants struct {
	Notifications Status `yaml:"notifications"`
	ExactAlarms   Status `yaml:"exact_alarms"`
}

func defaultGrants() Grants {
	return Grants{
		Notifications: StatusNotDetermined,
		ExactAlarms:   StatusGranted,
	}
}

type Opener interface {
	Open(path string) error
}

type SystemOpener struct{}

func (SystemOpener) Open(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}

type FileGateway struct {
	path          string
	exactRequired bool
	available     func() bool
	prompter      Prompter
	opener        Opener
	logger        *slog.Logger

	// one prompt at a time
	requestMu sync.Mutex
}

type Option func(*FileGateway)

// WithExactAlarmsRequired false models platforms without an exact alarm
// permission, where exact scheduling is always allowed.
func WithExactAlarmsRequired(required bool) Option {
	return func(g *FileGateway) { g.exactRequired = required }
}

func WithAvailability(f func() bool) Option {
	return func(g *FileGateway) {
		if f != nil {
			g.available = f
		}
	}
}

func WithPrompter(p Prompter) Option {
	return func(g *FileGateway) { g.prompter = p }
}

func WithOpener(o Opener) Option {
	return func(g *FileGateway) {
		if o != nil {
			g.opener = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *FileGateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewFileGateway(path string, opts ...Option) *FileGateway {
	g := &FileGateway{
		path:          path,
		exactRequired: true,
		available:     func() bool { return true },
		opener:        SystemOpener{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *FileGateway) Path() string { return g.path }

// Load reads the grants file; a missing file yields the defaults.
func (g *FileGateway) Load() (Grants, error) {
	out := defaultGrants()
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return out, err
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return defaultGrants(), fmt.Errorf("decode grants %s: %w", g.path, err)
	}
	if out.Notifications == "" {
		out.Notifications = StatusNotDetermined
	}
	if out.ExactAlarms == "" {
		out.ExactAlarms = StatusGranted
	}
	if !out.Notifications.IsValid() || !out.ExactAlarms.IsValid() {
		return defaultGrants(), fmt.Errorf("%w in %s", ErrInvalidStatus, g.path)
	}
	return out, nil
}

func (g *FileGateway) Save(in Grants) error {
	if dir := filepath.Dir(g.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}

func (g *FileGateway) HasNotificationPermission(ctx context.Context) bool {
	grants, err := g.Load()
	if err != nil {
		g.logger.Warn("read permission grants", "err", err)
		return false
	}
	return grants.Notifications == StatusGranted && g.available()
}

func (g *FileGateway) RequestNotificationPermission(ctx context.Context) (bool, error) {
	g.requestMu.Lock()
	defer g.requestMu.Unlock()

	grants, err := g.Load()
	if err != nil {
		return false, err
	}
	switch grants.Notifications {
	case StatusGranted:
		return g.available(), nil
	case StatusDenied:
		// Denied stays denied until changed in settings.
		return false, nil
	}
	if !g.available() || g.prompter == nil {
		return false, nil
	}

	granted, err := g.prompter.Prompt(ctx, KindNotifications)
	if err != nil {
		return false, err
	}
	grants.Notifications = StatusDenied
	if granted {
		grants.Notifications = StatusGranted
	}
	if err := g.Save(grants); err != nil {
		return false, fmt.Errorf("record notification grant: %w", err)
	}
	g.logger.Info("notification permission answered", "granted", granted)
	return granted, nil
}

func (g *FileGateway) HasExactAlarmPermission(ctx context.Context) bool {
	if !g.exactRequired {
		return true
	}
	grants, err := g.Load()
	if err != nil {
		g.logger.Warn("read permission grants", "err", err)
		return false
	}
	return grants.ExactAlarms == StatusGranted
}

func (g *FileGateway) OpenExactAlarmPermissionSettings(ctx context.Context) error {
	if !g.exactRequired {
		return nil
	}
	return g.openSettings()
}

func (g *FileGateway) OpenNotificationSettings(ctx context.Context) error {
	return g.openSettings()
}

func (g *FileGateway) openSettings() error {
	if _, err := os.Stat(g.path); errors.Is(err, fs.ErrNotExist) {
		grants, loadErr := g.Load()
		if loadErr != nil {
			return loadErr
		}
		if err := g.Save(grants); err != nil {
			return err
		}
	}
	return g.opener.Open(g.path)
}
