package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/motivation-app/motivation/pkg/log"
	"github.com/motivation-app/motivation/pkg/settings"
)

const (
	settingsFileName = "settings.toml"
	debounceDelay    = 100 * time.Millisecond
)

// SettingsFile implements settings.Store and settings.Watcher using a TOML
// file. Keys it does not know are kept on write.
type SettingsFile struct {
	dir    string
	logger log.Logger

	mu sync.Mutex
	// last file contents read by Watch or written by this process
	last snapshot
}

// snapshot holds the raw values of the known keys.
type snapshot map[settings.Key]interface{}

func snapshotOf(doc map[string]interface{}) snapshot {
	birthday := doc[string(settings.KeyBirthday)]
	if v, ok := birthday.(int64); ok {
		birthday = float64(v)
	}
	return snapshot{
		settings.KeyBirthday:       birthday,
		settings.KeyPrecisionLevel: doc[string(settings.KeyPrecisionLevel)],
	}
}

func (s snapshot) changed(o snapshot) []settings.Key {
	var keys []settings.Key
	for _, key := range []settings.Key{settings.KeyBirthday, settings.KeyPrecisionLevel} {
		if !sameValue(s[key], o[key]) {
			keys = append(keys, key)
		}
	}
	return keys
}

// sameValue is reflect.DeepEqual except that NaN equals NaN.
func sameValue(a, b interface{}) bool {
	x, xok := a.(float64)
	y, yok := b.(float64)
	if xok && yok && x != x && y != y {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// NewSettingsFile creates a SettingsFile for the given directory.
func NewSettingsFile(dir string, logger log.Logger) *SettingsFile {
	return &SettingsFile{dir: dir, logger: log.OrNoop(logger)}
}

// Path returns the full path to the settings file.
func (f *SettingsFile) Path() string {
	return filepath.Join(f.dir, settingsFileName)
}

// Birthday returns the stored birthday seconds. Integer values are accepted.
// NaN, infinities and out of range values yield ErrInvalidValue.
func (f *SettingsFile) Birthday() (float64, bool, error) {
	doc, err := f.load()
	if err != nil {
		return 0, false, err
	}
	var sec float64
	switch v := doc[string(settings.KeyBirthday)].(type) {
	case nil:
		return 0, false, nil
	case float64:
		sec = v
	case int64:
		sec = float64(v)
	default:
		return 0, false, fmt.Errorf("%w: %s is %T", settings.ErrInvalidValue, settings.KeyBirthday, v)
	}
	if !settings.ValidUnixSeconds(sec) {
		return 0, false, fmt.Errorf("%w: %s %v is out of range", settings.ErrInvalidValue, settings.KeyBirthday, sec)
	}
	return sec, true, nil
}

// SetBirthday stores seconds, or removes the key when seconds is nil.
func (f *SettingsFile) SetBirthday(seconds *float64) error {
	if seconds != nil && !settings.ValidUnixSeconds(*seconds) {
		return fmt.Errorf("%w: birthday %v", settings.ErrInvalidValue, *seconds)
	}
	return f.update(func(doc map[string]interface{}) {
		if seconds == nil {
			delete(doc, string(settings.KeyBirthday))
			return
		}
		doc[string(settings.KeyBirthday)] = *seconds
	})
}

// PrecisionLevel returns the stored level integer without validating it.
func (f *SettingsFile) PrecisionLevel() (int, bool, error) {
	doc, err := f.load()
	if err != nil {
		return 0, false, err
	}
	switch v := doc[string(settings.KeyPrecisionLevel)].(type) {
	case nil:
		return 0, false, nil
	case int64:
		return int(v), true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s is %T", settings.ErrInvalidValue, settings.KeyPrecisionLevel, v)
	}
}

// SetPrecisionLevel stores the level integer.
func (f *SettingsFile) SetPrecisionLevel(level int) error {
	return f.update(func(doc map[string]interface{}) {
		doc[string(settings.KeyPrecisionLevel)] = int64(level)
	})
}

// Watch reports keys whose stored value changed on disk until ctx is done.
// Events are debounced, and writes made through this SettingsFile are not
// reported.
func (f *SettingsFile) Watch(ctx context.Context, onChange func(settings.Key)) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	if doc, err := f.load(); err == nil {
		f.mu.Lock()
		f.last = snapshotOf(doc)
		f.mu.Unlock()
	}

	fire := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != settingsFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			for _, key := range f.diff() {
				onChange(key)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("settings watcher error", log.Err(err))
		}
	}
}

// diff reloads the file and returns the keys that differ from the last
// known contents.
func (f *SettingsFile) diff() []settings.Key {
	doc, err := f.load()
	if err != nil {
		f.logger.Warn("reload settings file", log.String("path", f.Path()), log.Err(err))
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	snap := snapshotOf(doc)
	keys := f.last.changed(snap)
	f.last = snap
	return keys
}

func (f *SettingsFile) load() (map[string]interface{}, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}

	doc := map[string]interface{}{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path(), err)
	}
	return doc, nil
}

// update applies fn to the file contents and writes them back atomically.
func (f *SettingsFile) update(fn func(doc map[string]interface{})) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	fn(doc)

	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return err
	}

	path := f.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	f.last = snapshotOf(doc)
	return nil
}

var (
	_ settings.Store   = (*SettingsFile)(nil)
	_ settings.Watcher = (*SettingsFile)(nil)
)
