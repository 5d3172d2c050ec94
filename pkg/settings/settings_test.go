package settings

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

var errDisk = errors.New("disk on fire")

// failingStore fails every read and/or write.
type failingStore struct {
	failReads  bool
	failWrites bool
}

func (f failingStore) Birthday() (float64, bool, error) {
	if f.failReads {
		return 0, false, errDisk
	}
	return 0, false, nil
}

func (f failingStore) SetBirthday(*float64) error {
	if f.failWrites {
		return errDisk
	}
	return nil
}

func (f failingStore) PrecisionLevel() (int, bool, error) {
	if f.failReads {
		return 0, false, errDisk
	}
	return 0, false, nil
}

func (f failingStore) SetPrecisionLevel(int) error {
	if f.failWrites {
		return errDisk
	}
	return nil
}

func TestNew_Defaults(t *testing.T) {
	s := New(nil)

	if s.Birthday().IsSet() {
		t.Error("fresh settings should have no birthday")
	}
	if s.PrecisionLevel() != Terrifying {
		t.Errorf("PrecisionLevel() = %v, want terrifying", s.PrecisionLevel())
	}
}

func TestNew_InvalidPersistedPrecision(t *testing.T) {
	for _, raw := range []int{3, -1, 42} {
		store := NewMemoryStore()
		_ = store.SetPrecisionLevel(raw)

		s := New(store)
		if s.PrecisionLevel() != Terrifying {
			t.Errorf("persisted %d: PrecisionLevel() = %v, want terrifying", raw, s.PrecisionLevel())
		}
	}
}

func TestNew_UnreadableStoreUsesDefaults(t *testing.T) {
	s := New(failingStore{failReads: true})

	if s.Birthday().IsSet() {
		t.Error("birthday should be unset when the store cannot be read")
	}
	if s.PrecisionLevel() != Terrifying {
		t.Errorf("PrecisionLevel() = %v, want terrifying", s.PrecisionLevel())
	}
}

func TestNew_LoadsPersistedValues(t *testing.T) {
	store := NewMemoryStore()
	sec := 645438600.5
	_ = store.SetBirthday(&sec)
	_ = store.SetPrecisionLevel(int(Light))

	s := New(store)

	got, ok := s.Birthday().Get()
	if !ok || !got.Equal(time.Date(1990, 6, 15, 8, 30, 0, 500_000_000, time.UTC)) {
		t.Errorf("Birthday() = %v, %v", got, ok)
	}
	if s.PrecisionLevel() != Light {
		t.Errorf("PrecisionLevel() = %v, want light", s.PrecisionLevel())
	}
}

func TestNew_OutOfRangeStoredBirthday(t *testing.T) {
	for _, sec := range []float64{math.NaN(), math.Inf(1), -1e19} {
		store := NewMemoryStore()
		_ = store.SetBirthday(&sec)

		if b := New(store).Birthday(); b.IsSet() {
			t.Errorf("stored %v: Birthday() = %v, want unset", sec, b)
		}
	}
}

func TestSetBirthday_RejectsOutOfRange(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)
	called := false
	s.OnBirthdayChange(func(Birthday) { called = true })

	far := BirthdayAt(time.Date(200_000_000_000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := s.SetBirthday(far); !errors.Is(err, ErrInvalidBirthday) {
		t.Fatalf("SetBirthday() error = %v, want ErrInvalidBirthday", err)
	}
	if called || s.Birthday().IsSet() {
		t.Error("rejected birthday must not change state or notify")
	}
	if _, ok, _ := store.Birthday(); ok {
		t.Error("rejected birthday must not reach the store")
	}
}

func TestRefresh_KeepsBirthdayWhenStoredValueIsInvalid(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)
	at := BirthdayAt(time.Unix(645438600, 0))
	if err := s.SetBirthday(at); err != nil {
		t.Fatal(err)
	}

	called := false
	s.OnBirthdayChange(func(Birthday) { called = true })

	nan := math.NaN()
	_ = store.SetBirthday(&nan)
	s.refresh()

	if called {
		t.Error("invalid stored birthday should not be published")
	}
	if !s.Birthday().Equal(at) {
		t.Errorf("Birthday() = %v, want %v", s.Birthday(), at)
	}
}

func TestSetBirthday_RoundTripAndNotifies(t *testing.T) {
	s := New(NewMemoryStore())

	var got []Birthday
	s.OnBirthdayChange(func(b Birthday) { got = append(got, b) })

	values := []Birthday{
		BirthdayAt(time.Date(1990, 6, 15, 8, 30, 0, 123_456_789, time.UTC)),
		Unset(),
		BirthdayAt(time.Date(2001, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))),
	}

	for i, want := range values {
		if err := s.SetBirthday(want); err != nil {
			t.Fatalf("SetBirthday(%v): %v", want, err)
		}
		if !s.Birthday().Equal(want) {
			t.Errorf("Birthday() = %v, want %v", s.Birthday(), want)
		}
		if len(got) != i+1 {
			t.Fatalf("after %d sets got %d notifications", i+1, len(got))
		}
		if !got[i].Equal(want) {
			t.Errorf("notification %d carried %v, want %v", i, got[i], want)
		}
	}
}

func TestSetBirthday_ClearsStore(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)

	_ = s.SetBirthday(BirthdayAt(time.Unix(1000, 0)))
	if _, ok, _ := store.Birthday(); !ok {
		t.Fatal("store should hold the birthday")
	}

	_ = s.SetBirthday(Unset())
	if _, ok, _ := store.Birthday(); ok {
		t.Error("store should no longer hold a birthday")
	}
}

func TestSetBirthday_WriteErrorDoesNotNotify(t *testing.T) {
	s := New(failingStore{failWrites: true})

	called := false
	s.OnBirthdayChange(func(Birthday) { called = true })

	err := s.SetBirthday(BirthdayAt(time.Unix(1000, 0)))
	if !errors.Is(err, errDisk) {
		t.Fatalf("SetBirthday() error = %v, want %v", err, errDisk)
	}
	if called {
		t.Error("subscriber should not fire when the write fails")
	}
	if s.Birthday().IsSet() {
		t.Error("birthday should be unchanged after a failed write")
	}
}

func TestSetPrecisionLevel(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)

	var got []PrecisionLevel
	s.OnPrecisionChange(func(p PrecisionLevel) { got = append(got, p) })

	for _, p := range PrecisionLevels() {
		if err := s.SetPrecisionLevel(p); err != nil {
			t.Fatalf("SetPrecisionLevel(%v): %v", p, err)
		}
		if s.PrecisionLevel() != p {
			t.Errorf("PrecisionLevel() = %v, want %v", s.PrecisionLevel(), p)
		}
		if raw, _, _ := store.PrecisionLevel(); raw != int(p) {
			t.Errorf("stored level = %d, want %d", raw, int(p))
		}
	}
	if len(got) != 3 || got[0] != Light || got[1] != Moderate || got[2] != Terrifying {
		t.Errorf("notifications = %v", got)
	}
}

func TestSetPrecisionLevel_RejectsInvalid(t *testing.T) {
	s := New(nil)
	called := false
	s.OnPrecisionChange(func(PrecisionLevel) { called = true })

	err := s.SetPrecisionLevel(PrecisionLevel(7))
	if !errors.Is(err, ErrInvalidPrecisionLevel) {
		t.Errorf("error = %v, want ErrInvalidPrecisionLevel", err)
	}
	if called || s.PrecisionLevel() != Terrifying {
		t.Error("invalid level must not change state or notify")
	}
}

func TestSubscribers_AllFireBeforeReturn(t *testing.T) {
	s := New(nil)

	var fired [3]bool
	for i := range fired {
		i := i
		s.OnPrecisionChange(func(PrecisionLevel) { fired[i] = true })
	}

	_ = s.SetPrecisionLevel(Moderate)
	for i, f := range fired {
		if !f {
			t.Errorf("subscriber %d did not fire before SetPrecisionLevel returned", i)
		}
	}
}

func TestSubscribers_CanReadSettings(t *testing.T) {
	s := New(nil)

	var seen PrecisionLevel
	s.OnPrecisionChange(func(PrecisionLevel) { seen = s.PrecisionLevel() })

	_ = s.SetPrecisionLevel(Light)
	if seen != Light {
		t.Errorf("handler read %v, want light", seen)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New(nil)

	count := 0
	sub := s.OnBirthdayChange(func(Birthday) { count++ })
	other := s.OnBirthdayChange(func(Birthday) {})
	if sub.ID() == other.ID() {
		t.Fatal("subscriptions should have distinct IDs")
	}

	_ = s.SetBirthday(BirthdayAt(time.Unix(1, 0)))
	s.Unsubscribe(sub)
	_ = s.SetBirthday(BirthdayAt(time.Unix(2, 0)))

	if count != 1 {
		t.Errorf("handler fired %d times, want 1", count)
	}

	// unknown subscriptions are ignored
	s.Unsubscribe(Subscription{})
}

func TestWatch_Unsupported(t *testing.T) {
	s := New(failingStore{})
	if err := s.Watch(context.Background()); !errors.Is(err, ErrWatchUnsupported) {
		t.Errorf("Watch() error = %v, want ErrWatchUnsupported", err)
	}
}

func TestWatch_PublishesExternalChanges(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)

	var mu sync.Mutex
	var birthdays []Birthday
	var levels []PrecisionLevel
	s.OnBirthdayChange(func(b Birthday) {
		mu.Lock()
		birthdays = append(birthdays, b)
		mu.Unlock()
	})
	s.OnPrecisionChange(func(p PrecisionLevel) {
		mu.Lock()
		levels = append(levels, p)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	waitFor := func(cond func() bool) bool {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			mu.Lock()
			ok := cond()
			mu.Unlock()
			if ok {
				return true
			}
			time.Sleep(5 * time.Millisecond)
		}
		return false
	}

	// Give the watcher time to register before editing the store.
	time.Sleep(20 * time.Millisecond)

	sec := 645438600.0
	_ = store.SetBirthday(&sec)
	_ = store.SetPrecisionLevel(int(Moderate))

	if !waitFor(func() bool { return len(birthdays) == 1 && len(levels) == 1 }) {
		t.Fatalf("expected one external birthday and level change, got %v / %v", birthdays, levels)
	}
	if s.PrecisionLevel() != Moderate {
		t.Errorf("PrecisionLevel() = %v, want moderate", s.PrecisionLevel())
	}
	if got, _ := s.Birthday().Get(); got.Unix() != 645438600 {
		t.Errorf("Birthday() = %v", got)
	}

	// A write through Settings is published once, not echoed by the watcher.
	_ = s.SetPrecisionLevel(Light)
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	n := len(levels)
	mu.Unlock()
	if n != 2 {
		t.Errorf("got %d level notifications, want 2", n)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned %v", err)
	}
}
