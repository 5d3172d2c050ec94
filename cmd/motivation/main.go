package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/motivation-app/motivation"
	"github.com/motivation-app/motivation/internal/adapters/fs"
	"github.com/motivation-app/motivation/internal/app"
	"github.com/motivation-app/motivation/internal/cliconfig"
	"github.com/motivation-app/motivation/pkg/age"
	"github.com/motivation-app/motivation/pkg/calendar"
	"github.com/motivation-app/motivation/pkg/display"
	"github.com/motivation-app/motivation/pkg/lifecycle"
	"github.com/motivation-app/motivation/pkg/log"
	"github.com/motivation-app/motivation/pkg/settings"
)

const longHelp = `Shows how old you are, in years, to up to nine decimal places.

Your age ticks up about 30 times a second. Leap years, daylight saving
days and leap seconds are taken into account at the moment of display.

Settings are stored in <settings-dir>/settings.toml and picked up live
when edited by another process.`

var exampleUsage = strings.TrimSpace(`
  motivation birthday set 1990-06-15T08:30
  motivation level set moderate
  motivation
  motivation age --at 2030-01-01
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return motivation.Version
}

// env holds everything built from the resolved configuration.
type env struct {
	cfg       cliconfig.Config
	logger    *log.ZerologLogger
	loc       *time.Location
	store     *fs.SettingsFile
	settings  *settings.Settings
	formatter *display.Formatter
}

func main() {
	root, e := newRootCmd()
	if err := root.Execute(); err != nil {
		e.logger.Error("motivation", log.Err(err))
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The returned env is filled in by
// setup before any command runs.
func newRootCmd() (*cobra.Command, *env) {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	e := &env{}

	// Replaced once log-level is known.
	e.logger = cliconfig.Logger(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "motivation",
		Short:         "Watch your age tick by, to nine decimal places",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := setup(cmd, cfg, cfgPath)
			if err != nil {
				return err
			}
			*e = built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd.Context(), e, cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.motivation/config.toml)")
	flags.StringVar(&cfg.SettingsDir, "settings-dir", cfg.SettingsDir, "directory holding settings.toml (default: $HOME/.motivation)")
	flags.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA time zone for calendar arithmetic")
	flags.BoolVar(&cfg.LeapSeconds, "leap-seconds", cfg.LeapSeconds, "count IERS leap seconds")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	flags.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "text shown while no birthday is set")

	root.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "frames drawn per second")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "draw a single frame and exit")

	root.AddCommand(
		newAgeCmd(e),
		newBirthdayCmd(e),
		newLevelCmd(e),
	)
	return root, e
}

// setup resolves configuration with precedence flags > env > file > defaults
// and builds the settings stack from it.
func setup(cmd *cobra.Command, cfg cliconfig.Config, cfgPath string) (env, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return env{}, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return env{}, err
		}
	} else if cfgPath != "" {
		return env{}, fmt.Errorf("config file %s not found", cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return env{}, err
	}

	if err := cfg.Validate(); err != nil {
		return env{}, err
	}
	if err := motivation.CheckVersions(); err != nil {
		return env{}, err
	}

	level, _ := cfg.Level()
	loc, _ := cfg.Location()
	logger := cliconfig.Logger(level)

	zl := logger.Logger()
	zl.Debug().Interface("config", cfg).Msg("configuration")

	leap := calendar.NoLeapSeconds()
	if cfg.LeapSeconds {
		leap = calendar.IERSLeapSeconds()
	}
	cal := calendar.NewGregorian(calendar.WithLocation(loc), calendar.WithLeapSeconds(leap))
	logger.Debug("calendar ready",
		log.String("location", cal.Location().String()),
		log.Int("leap_seconds", cal.LeapSeconds().Len()))
	calc := age.New(cal, age.WithLogger(logger))

	var fopts []display.Option
	if cfg.Prompt != "" {
		fopts = append(fopts, display.WithPrompt(cfg.Prompt))
	}

	store := fs.NewSettingsFile(cfg.SettingsDir, logger)

	return env{
		cfg:       cfg,
		logger:    logger,
		loc:       loc,
		store:     store,
		settings:  settings.New(store, settings.WithLogger(logger)),
		formatter: display.New(calc, fopts...),
	}, nil
}

func (e *env) newScreen(once bool, out io.Writer) *app.Screen {
	return app.NewScreen(
		app.ScreenConfig{FPS: e.cfg.FPS, Once: once},
		e.settings,
		e.formatter,
		age.SystemClock{},
		out,
		e.logger,
	)
}

// runScreen draws until interrupted, following external settings edits.
func runScreen(parent context.Context, e *env, out io.Writer) error {
	screen := e.newScreen(e.cfg.Once, out)
	if e.cfg.Once {
		return screen.Run(parent)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := screen.Start(ctx); err != nil {
		return fmt.Errorf("start screen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-screen.Done()
		cancel()
		return screen.Err()
	})

	g.Go(func() error {
		err := e.settings.Watch(gctx)
		if errors.Is(err, settings.ErrWatchUnsupported) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("watch settings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-sigCh:
			e.logger.Debug("received signal, stopping")
		case <-gctx.Done():
		}
		if err := screen.Stop(); err != nil && !errors.Is(err, lifecycle.ErrNotRunning) {
			return fmt.Errorf("stop screen: %w", err)
		}
		return nil
	})

	return g.Wait()
}
