package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/client/config"
	"github.com/dmitrijs2005/cropcare/internal/client/services"
	"github.com/dmitrijs2005/cropcare/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App is the interactive client. The session store and the recommendation
// service are built by the caller and injected.
type App struct {
	config      *config.Config
	session     services.SessionService
	recommender services.RecommendationService
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp wires an App reading commands from stdin and writing to stdout.
func NewApp(c *config.Config, session services.SessionService, recommender services.RecommendationService, logger logging.Logger) *App {
	return &App{
		config:      c,
		session:     session,
		recommender: recommender,
		logger:      logger.With("component", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		mode:        ModeOffline,
	}
}

// Mode reports whether the recommendation backend was reachable at the last probe.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.recommender.Close(ctx) }()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == services.StateLoggedIn
}

// probe pings the backend once and updates the mode.
func (a *App) probe(ctx context.Context) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 || timeout > a.config.OnlineCheckInterval {
		timeout = a.config.OnlineCheckInterval
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	err := a.recommender.Ping(ctx)
	cancel()

	if err != nil {
		a.logger.Debug(ctx, "backend ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher probes the backend right away and then every
// interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
