// Package scheduler runs the wallpaper change loop: every check interval it
// compares the time since the last change against the change interval and, once
// exceeded, applies a random wallpaper from the catalog.
package scheduler

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"git.asdf.cafe/abs3nt/simpledesktop/config"
	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
	"git.asdf.cafe/abs3nt/simpledesktop/interfaces"
	"git.asdf.cafe/abs3nt/simpledesktop/src/simpledesktops"
)

// State is owned by the loop and mutated only by Tick.
type State struct {
	TotalCount        uint32
	DownloadDirectory string
	ChangeInterval    time.Duration
	LastChange        time.Time
}

// Options configures a Scheduler. Catalog, Cache and Desktop are required.
type Options struct {
	Catalog  interfaces.Catalog
	Cache    interfaces.WallpaperCache
	Desktop  interfaces.Desktop
	History  interfaces.HistoryStore  // optional
	Executor interfaces.ScriptExecutor // optional, used when ScriptPath is set
	Config   *config.Config
	Logger   *slog.Logger

	// Test seams; zero values use the real implementations.
	LookupEnv config.LookupFunc
	Now       func() time.Time
	RandomN   func(n uint32) uint32
	Sleep     func(ctx context.Context, d time.Duration) error
}

// Scheduler drives the check/apply cycle
type Scheduler struct {
	catalog  interfaces.Catalog
	cache    interfaces.WallpaperCache
	desktop  interfaces.Desktop
	history  interfaces.HistoryStore
	executor interfaces.ScriptExecutor
	cfg      *config.Config
	logger   *slog.Logger
	runID    string

	lookupEnv config.LookupFunc
	now       func() time.Time
	randomN   func(n uint32) uint32
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a scheduler from opts
func New(opts Options) *Scheduler {
	s := &Scheduler{
		catalog:   opts.Catalog,
		cache:     opts.Cache,
		desktop:   opts.Desktop,
		history:   opts.History,
		executor:  opts.Executor,
		cfg:       opts.Config,
		logger:    opts.Logger,
		runID:     uuid.NewString(),
		lookupEnv: opts.LookupEnv,
		now:       opts.Now,
		randomN:   opts.RandomN,
		sleep:     opts.Sleep,
	}
	if s.cfg == nil {
		s.cfg = config.NewConfig()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("run_id", s.runID)
	if s.lookupEnv == nil {
		s.lookupEnv = os.LookupEnv
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.randomN == nil {
		s.randomN = rand.Uint32N
	}
	if s.sleep == nil {
		s.sleep = sleepContext
	}
	return s
}

// RunID identifies this process in logs and history
func (s *Scheduler) RunID() string {
	return s.runID
}

// Init resolves the download directory and captures the catalog size. The
// total count is never refreshed afterwards.
func (s *Scheduler) Init(ctx context.Context) (*State, error) {
	dir, err := config.ResolveDownloadDirectory(s.cfg.DownloadDirectory, s.desktop.DefaultPicturesDirectory)
	if err != nil {
		return nil, err
	}

	total, err := s.catalog.TotalCount(ctx)
	if err != nil {
		return nil, err
	}

	st := &State{
		TotalCount:        total,
		DownloadDirectory: dir,
		ChangeInterval:    s.cfg.ChangeInterval,
		LastChange:        s.now(),
	}
	s.logger.Info("Scheduler initialized",
		"directory", st.DownloadDirectory,
		"total_count", st.TotalCount,
		"change_interval", st.ChangeInterval,
	)
	return st, nil
}

// Tick is one loop iteration without the sleep.
func (s *Scheduler) Tick(ctx context.Context, st *State) error {
	if s.now().Sub(st.LastChange) > st.ChangeInterval {
		if _, err := s.ApplyRandom(ctx, st); err != nil {
			return err
		}
		st.LastChange = s.now()
	}

	interval, ok, err := config.TimeoutFromEnv(s.lookupEnv)
	if err != nil {
		return err
	}
	if ok && interval != st.ChangeInterval {
		s.logger.Log(ctx, constants.LevelTrace, "Change interval updated from environment", "interval", interval)
		st.ChangeInterval = interval
	}
	return nil
}

// ApplyRandom downloads the wallpaper at a random offset below st.TotalCount
// and sets it as the desktop background.
func (s *Scheduler) ApplyRandom(ctx context.Context, st *State) (*simpledesktops.DownloadedWallpaper, error) {
	if st.TotalCount == 0 {
		return nil, errors.API("pick random wallpaper", errors.ErrEmptyCatalog)
	}
	offset := s.randomN(st.TotalCount)

	wp, err := s.cache.EnsureDownloaded(ctx, offset, st.DownloadDirectory)
	if err != nil {
		return nil, err
	}

	if err := s.desktop.SetDesktopBackground(wp.Path); err != nil {
		return nil, err
	}

	if s.cfg.ScriptPath != "" && s.executor != nil {
		if err := s.executor.Execute(s.cfg.ScriptPath, wp.Path); err != nil {
			return nil, err
		}
	}

	if s.history != nil {
		if err := s.history.Record(s.runID, offset, wp, s.now()); err != nil {
			s.logger.Warn("Failed to record wallpaper history", "path", wp.Path, "error", err)
		}
	}

	s.logger.Info("Wallpaper changed", "title", wp.Entry.Title, "offset", offset, "cached", wp.Cached)
	return wp, nil
}

// Run initializes and then loops until an error occurs or ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	st, err := s.Init(ctx)
	if err != nil {
		return err
	}

	for {
		if err := s.Tick(ctx, st); err != nil {
			return err
		}
		if err := s.sleep(ctx, s.cfg.CheckInterval); err != nil {
			s.logger.Info("Scheduler stopped", "reason", err)
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
