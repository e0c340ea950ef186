package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/simpletemp/internal/client/client"
	"github.com/dmitrijs2005/simpletemp/internal/client/config"
	"github.com/dmitrijs2005/simpletemp/internal/client/services"
	"github.com/dmitrijs2005/simpletemp/internal/client/sync"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// AppName is stamped on every report.
const AppName = "SimpleTemp"

// syncRunner is the part of sync.DataSync the CLI uses.
type syncRunner interface {
	Start(ctx context.Context) error
	Sync(ctx context.Context)
	SyncNow(ctx context.Context) (sync.Stats, error)
}

// App is the client context: everything a command needs, built once by
// NewApp and torn down by Close.
type App struct {
	config *config.Config
	log    logging.Logger

	repos     *client.Repositories
	db        *dispatch.Queue
	net       *dispatch.Queue
	transport client.Transport

	identity services.IdentityService
	profiles services.ProfileService
	reports  services.ReportService
	syncer   syncRunner

	loggedIn atomic.Bool

	// stopSchedule and scheduleDone are set once continuous sync runs.
	stopSchedule context.CancelFunc
	scheduleDone chan struct{}

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the store and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	mode, err := sync.ParseReplicationType(c.SyncMode)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, c.StoreEngine, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	onError := func(ctx context.Context, queue string, err error) {
		log.Warn(ctx, "background task failed", "queue", queue, "error", err)
	}
	db := dispatch.New("db", dispatch.WithErrorHandler(onError))
	net := dispatch.New("net", dispatch.WithErrorHandler(onError))

	auth := services.NewAuthManager(log.With("component", "auth"))

	transport, err := client.NewGRPCClient(c.SyncTarget, client.WithAppID(auth.HashedAppID))
	if err != nil {
		return nil, errors.Join(err, repos.Close())
	}

	dataSync := sync.NewDataSync(
		sync.ReplicatorConfig{
			Target:      c.SyncTarget,
			Type:        mode,
			Continuous:  c.SyncContinuous,
			Interval:    c.SyncInterval,
			PassTimeout: c.SyncTimeout,
		},
		sync.Deps{
			Store:     repos.Documents,
			Meta:      repos.Metadata,
			Transport: transport,
			DB:        db,
			Log:       log.With("component", "sync"),
		},
		net,
	)

	return &App{
		config:    c,
		log:       log,
		repos:     repos,
		db:        db,
		net:       net,
		transport: transport,
		identity:  services.NewIdentityService(auth, repos.Apps, db, log.With("component", "identity")),
		profiles:  services.NewProfileService(repos.Profiles, db),
		reports:   services.NewReportService(AppName, auth, repos.Reports, db, dataSync, log.With("component", "reports")),
		syncer:    dataSync,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run shows the login prompt when an identity exists and then serves the
// REPL until the user quits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to SimpleTemp (type 'help' for commands)")

	registered, err := a.identity.IsRegistered(ctx)
	if err != nil {
		return err
	}
	if registered {
		if err := a.Login(ctx); err != nil {
			a.log.Warn(ctx, "login error", "error", err)
		}
	} else {
		fmt.Fprintln(a.out, "No identity on this device yet, use 'register' to create one")
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close waits for queued background work and releases the store and the
// transport.
func (a *App) Close() error {
	if a.stopSchedule != nil {
		a.stopSchedule()
		<-a.scheduleDone
	}
	a.net.Wait()
	a.db.Wait()
	return errors.Join(a.transport.Close(), a.repos.Close())
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn.Load()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "unlocked"
	}
	return "locked"
}

// unlock marks the session active and, the first time, starts the
// continuous sync schedule when it is configured.
func (a *App) unlock(ctx context.Context) {
	a.loggedIn.Store(true)
	if a.stopSchedule != nil || !a.config.SyncContinuous {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	a.stopSchedule = cancel
	a.scheduleDone = make(chan struct{})
	go func() {
		defer close(a.scheduleDone)
		if err := a.syncer.Start(ctx); err != nil {
			a.log.Warn(ctx, "scheduled sync stopped", "error", err)
		}
	}()
}
