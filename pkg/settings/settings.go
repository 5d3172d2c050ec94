package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/motivation-app/motivation/pkg/log"
)

// Subscription identifies a registered change handler.
type Subscription struct {
	id uuid.UUID
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id.String()
}

type birthdayHandler struct {
	id uuid.UUID
	fn func(Birthday)
}

type precisionHandler struct {
	id uuid.UUID
	fn func(PrecisionLevel)
}

// Settings holds the birthday and precision level, backed by a Store.
//
// Reads are served from memory. Setters write through to the store and
// then call every handler registered before the call, synchronously, on
// the caller's goroutine. Handlers run without the lock held and may read
// Settings, but must not block.
type Settings struct {
	store  Store
	logger log.Logger

	mu       sync.Mutex
	birthday Birthday
	level    PrecisionLevel

	// last birthday seconds read from or written to the store, compared
	// raw so float rounding never looks like an external change
	storedSeconds float64
	storedSet     bool

	birthdayHandlers  []birthdayHandler
	precisionHandlers []precisionHandler
}

// Option configures Settings.
type Option func(*Settings)

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Settings) {
		s.logger = logger
	}
}

// New creates Settings over store and loads the persisted values. A nil
// store means a fresh MemoryStore. Unreadable or invalid values load as
// the defaults.
func New(store Store, opts ...Option) *Settings {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &Settings{store: store}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.OrNoop(s.logger)

	s.birthday, s.storedSeconds, s.storedSet = s.loadBirthday()
	s.level = s.loadPrecisionLevel()
	return s
}

// Birthday returns the current birthday.
func (s *Settings) Birthday() Birthday {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.birthday
}

// SetBirthday persists b, or clears the stored birthday when b is unset,
// and notifies birthday subscribers with b. Returns ErrInvalidBirthday if
// b cannot be stored as Unix seconds.
func (s *Settings) SetBirthday(b Birthday) error {
	var seconds *float64
	sec, ok := b.Unix()
	if ok {
		if !ValidUnixSeconds(sec) {
			return fmt.Errorf("%w: %s is out of range", ErrInvalidBirthday, b)
		}
		seconds = &sec
	}

	s.mu.Lock()
	if err := s.store.SetBirthday(seconds); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("store birthday: %w", err)
	}
	s.birthday = b
	s.storedSeconds, s.storedSet = sec, ok
	handlers := append([]birthdayHandler(nil), s.birthdayHandlers...)
	s.mu.Unlock()

	s.logger.Info("birthday changed", log.Stringer("birthday", b))
	for _, h := range handlers {
		h.fn(b)
	}
	return nil
}

// PrecisionLevel returns the current precision level.
func (s *Settings) PrecisionLevel() PrecisionLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetPrecisionLevel persists p and notifies precision subscribers with p.
// Returns ErrInvalidPrecisionLevel if p is not a defined level.
func (s *Settings) SetPrecisionLevel(p PrecisionLevel) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPrecisionLevel, int(p))
	}

	s.mu.Lock()
	if err := s.store.SetPrecisionLevel(int(p)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("store precision level: %w", err)
	}
	s.level = p
	handlers := append([]precisionHandler(nil), s.precisionHandlers...)
	s.mu.Unlock()

	s.logger.Info("precision level changed", log.Stringer("level", p))
	for _, h := range handlers {
		h.fn(p)
	}
	return nil
}

// OnBirthdayChange registers fn to be called with every new birthday.
func (s *Settings) OnBirthdayChange(fn func(Birthday)) Subscription {
	id := uuid.New()
	s.mu.Lock()
	s.birthdayHandlers = append(s.birthdayHandlers, birthdayHandler{id: id, fn: fn})
	s.mu.Unlock()
	return Subscription{id: id}
}

// OnPrecisionChange registers fn to be called with every new precision level.
func (s *Settings) OnPrecisionChange(fn func(PrecisionLevel)) Subscription {
	id := uuid.New()
	s.mu.Lock()
	s.precisionHandlers = append(s.precisionHandlers, precisionHandler{id: id, fn: fn})
	s.mu.Unlock()
	return Subscription{id: id}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (s *Settings) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.birthdayHandlers {
		if h.id == sub.id {
			s.birthdayHandlers = append(s.birthdayHandlers[:i:i], s.birthdayHandlers[i+1:]...)
			return
		}
	}
	for i, h := range s.precisionHandlers {
		if h.id == sub.id {
			s.precisionHandlers = append(s.precisionHandlers[:i:i], s.precisionHandlers[i+1:]...)
			return
		}
	}
}

// Watch follows changes made to the store outside this Settings, reloading
// the values and notifying subscribers of the ones that differ. It blocks
// until ctx is done. Returns ErrWatchUnsupported if the store is not a
// Watcher.
func (s *Settings) Watch(ctx context.Context) error {
	w, ok := s.store.(Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, func(key Key) {
		s.logger.Debug("settings store changed", log.String("key", string(key)))
		s.refresh()
	})
}

// refresh reloads both values from the store. Writes made through this
// Settings compare equal and are not published twice.
func (s *Settings) refresh() {
	s.mu.Lock()

	var (
		birthdayChanged, levelChanged bool
		birthday                      Birthday
		level                         PrecisionLevel
	)

	if sec, ok, err := s.store.Birthday(); err != nil {
		s.logger.Error("reload birthday", log.Err(err))
	} else if ok != s.storedSet || (ok && sec != s.storedSeconds) {
		next := Unset()
		valid := true
		if ok {
			next, valid = BirthdayFromUnix(sec)
		}
		if valid {
			s.storedSeconds, s.storedSet = sec, ok
			s.birthday = next
			birthdayChanged, birthday = true, next
		} else {
			s.logger.Error("reload birthday, keeping current",
				log.Err(fmt.Errorf("%w: birthday %v", ErrInvalidValue, sec)))
		}
	}

	if next := s.loadPrecisionLevel(); next != s.level {
		s.level = next
		levelChanged, level = true, next
	}

	birthdayHandlers := append([]birthdayHandler(nil), s.birthdayHandlers...)
	precisionHandlers := append([]precisionHandler(nil), s.precisionHandlers...)
	s.mu.Unlock()

	if birthdayChanged {
		s.logger.Info("birthday changed externally", log.Stringer("birthday", birthday))
		for _, h := range birthdayHandlers {
			h.fn(birthday)
		}
	}
	if levelChanged {
		s.logger.Info("precision level changed externally", log.Stringer("level", level))
		for _, h := range precisionHandlers {
			h.fn(level)
		}
	}
}

func (s *Settings) loadBirthday() (Birthday, float64, bool) {
	sec, ok, err := s.store.Birthday()
	if err != nil {
		s.logger.Error("load birthday, treating as unset", log.Err(err))
		return Unset(), 0, false
	}
	if !ok {
		return Unset(), 0, false
	}
	b, valid := BirthdayFromUnix(sec)
	if !valid {
		s.logger.Error("load birthday, treating as unset",
			log.Err(fmt.Errorf("%w: birthday %v", ErrInvalidValue, sec)))
		return Unset(), 0, false
	}
	return b, sec, true
}

func (s *Settings) loadPrecisionLevel() PrecisionLevel {
	raw, ok, err := s.store.PrecisionLevel()
	if err != nil {
		s.logger.Error("load precision level, using default",
			log.Err(err),
			log.Stringer("default", DefaultPrecisionLevel))
		return DefaultPrecisionLevel
	}
	if !ok {
		return DefaultPrecisionLevel
	}
	p, valid := PrecisionLevelFromInt(raw)
	if !valid {
		s.logger.Warn("unrecognized precision level, using default",
			log.Int("stored", raw),
			log.Stringer("default", DefaultPrecisionLevel))
		return DefaultPrecisionLevel
	}
	return p
}
