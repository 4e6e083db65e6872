package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"storysync/internal/client/config"
	"storysync/internal/client/gateway"
	"storysync/internal/client/models"
	"storysync/internal/client/services"
	"storysync/internal/client/session"
	"storysync/internal/client/store"
	"storysync/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App holds the wired-up client and the REPL state.
type App struct {
	config *config.Config
	log    logging.Logger

	gw      gateway.Client
	store   *store.Store
	session *session.Session

	stories services.StoryService
	syncer  services.SyncService
	auth    services.AuthService

	Mode   Mode
	reader *bufio.Reader

	// pagination state for list/more
	page    int
	hasMore bool
	shown   []models.Story
	seenIds map[string]struct{}
}

// NewApp opens the local database, builds the API gateway and restores the
// persisted session.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault()

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	gw := gateway.NewHTTPClient(c.APIBaseURL, nil)
	st := store.New(db, gw, log)

	sess, err := session.Load(c.SessionPath)
	if err != nil {
		return nil, err
	}

	notifier := &TerminalNotifier{}

	return &App{
		config:  c,
		log:     log,
		gw:      gw,
		store:   st,
		session: sess,
		stories: services.NewStoryService(gw, st, sess, log),
		syncer:  services.NewSyncService(gw, st, sess, notifier, log),
		auth:    services.NewAuthService(gw, sess, log),
		Mode:    ModeOffline,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.Authenticated()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode == mode {
		return
	}
	a.Mode = mode
	printlnFn("Switched to", string(mode), "mode")

	// coming back online: push whatever queued up while offline
	if mode == ModeOnline {
		if res, err := a.syncer.Drain(ctx); err != nil {
			a.log.Error(ctx, "sync after reconnect failed", "error", err)
		} else if res.Synced > 0 {
			printlnFn("Synced", res.Synced, "queued stories")
		}
	}
}

// Run restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Story CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	s := string(a.Mode)
	if a.isLoggedIn() {
		s = s + ", logged in"
	}
	return "(" + s + ")"
}

// StartOnlineStatusWatcher probes API reachability on an interval and flips
// the mode on transitions. The badge is cosmetic: commands always attempt the
// network themselves and handle failures.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.gw.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
