package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/motivation-app/motivation/pkg/age"
	"github.com/motivation-app/motivation/pkg/display"
	"github.com/motivation-app/motivation/pkg/lifecycle"
	"github.com/motivation-app/motivation/pkg/log"
	"github.com/motivation-app/motivation/pkg/settings"
)

// DefaultFPS is the redraw rate when ScreenConfig.FPS is not set.
const DefaultFPS = 30

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[2K"

// ScreenConfig contains configuration for the screen loop.
type ScreenConfig struct {
	// FPS is the number of frames drawn per second.
	FPS int

	// Once draws a single frame and returns.
	Once bool

	// Terminal forces in-place redraws even when the output is not
	// detected as a terminal.
	Terminal bool
}

// Screen draws the age, redrawing it FPS times per second.
//
// On a terminal every frame replaces the previous one on the same line.
// Otherwise a new line is written at most once per second.
type Screen struct {
	config    ScreenConfig
	settings  *settings.Settings
	formatter *display.Formatter
	clock     age.Clock
	out       io.Writer
	terminal  bool
	logger    log.Logger
	lifecycle *lifecycle.DefaultManager

	mu         sync.Mutex
	lastSecond int64
	wrote      bool
}

// NewScreen creates a screen that draws to out. A nil clock means the
// system clock.
func NewScreen(
	config ScreenConfig,
	s *settings.Settings,
	f *display.Formatter,
	clock age.Clock,
	out io.Writer,
	logger log.Logger,
) *Screen {
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	if clock == nil {
		clock = age.SystemClock{}
	}
	logger = log.OrNoop(logger)

	terminal := config.Terminal || IsTerminal(out)
	if terminal {
		out = terminalWriter(out)
	}

	return &Screen{
		config:    config,
		settings:  s,
		formatter: f,
		clock:     clock,
		out:       out,
		terminal:  terminal,
		logger:    logger,
		lifecycle: lifecycle.NewManager(logger, nil),
	}
}

// Frame renders the text for the current instant.
func (s *Screen) Frame() string {
	return s.formatter.Format(s.settings.Birthday(), s.clock.Now(), s.settings.PrecisionLevel())
}

// Run draws frames until ctx is done. Settings changes are drawn at once
// instead of waiting for the next tick.
func (s *Screen) Run(ctx context.Context) error {
	if s.config.Once {
		_, err := fmt.Fprintln(s.out, s.Frame())
		return err
	}

	subs := []settings.Subscription{
		s.settings.OnBirthdayChange(func(b settings.Birthday) {
			s.logger.Info("birthday updated", log.Stringer("birthday", b))
			s.redraw()
		}),
		s.settings.OnPrecisionChange(func(p settings.PrecisionLevel) {
			s.logger.Info("precision updated",
				log.Stringer("level", p),
				log.Int("decimal_places", p.DecimalPlaces()))
			s.redraw()
		}),
	}
	defer func() {
		for _, sub := range subs {
			s.settings.Unsubscribe(sub)
			s.logger.Debug("settings handler removed", log.String("subscription", sub.ID()))
		}
	}()

	interval := time.Second / time.Duration(s.config.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Debug("screen started",
		log.Int("fps", s.config.FPS),
		log.Bool("terminal", s.terminal))

	if err := s.draw(false); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if s.terminal {
				_, _ = fmt.Fprintln(s.out)
			}
			return nil
		case <-ticker.C:
			if err := s.draw(false); err != nil {
				return fmt.Errorf("draw frame: %w", err)
			}
		}
	}
}

func (s *Screen) redraw() {
	if err := s.draw(true); err != nil {
		s.logger.Warn("redraw failed", log.Err(err))
	}
}

// draw writes one frame. Off a terminal, frames within the same second as
// the last written one are skipped unless force is set.
func (s *Screen) draw(force bool) error {
	now := s.clock.Now()
	line := s.formatter.Format(s.settings.Birthday(), now, s.settings.PrecisionLevel())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal {
		_, err := io.WriteString(s.out, clearLine+line)
		return err
	}

	sec := now.Unix()
	if s.wrote && sec == s.lastSecond && !force {
		return nil
	}
	s.wrote, s.lastSecond = true, sec
	_, err := fmt.Fprintln(s.out, line)
	return err
}

// Start runs the screen in the background.
func (s *Screen) Start(ctx context.Context) error {
	return s.lifecycle.Start(ctx, s.Run)
}

// Stop stops a screen started with Start.
func (s *Screen) Stop() error {
	return s.lifecycle.Stop(lifecycle.ShutdownTimeout)
}

// Status returns the lifecycle state of a screen started with Start.
func (s *Screen) Status() lifecycle.State {
	return s.lifecycle.State()
}

// Done is closed when a screen started with Start has returned.
func (s *Screen) Done() <-chan struct{} {
	return s.lifecycle.Done()
}

// Err returns the error that stopped a screen started with Start, if any.
func (s *Screen) Err() error {
	return s.lifecycle.Err()
}
