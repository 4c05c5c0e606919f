// Package launcher runs a set of long-lived applications side by side and
// waits for all of them to finish, grounded on the teacher's common.App /
// common.Launcher pair (common/app.go): one goroutine per registered App,
// a shared logger, and a WaitGroup the caller blocks on.
package launcher

import (
	"context"
	"sync"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// App is a deployable component: the HTTP server, the MQ consumer worker,
// the background sweeper, each implements this once.
type App interface {
	Run(l *Launcher) error
}

// Option configures a Launcher at construction time.
type Option func(l *Launcher)

// WithLogger attaches the logger every app and the launcher itself log
// through.
func WithLogger(logger mlog.Logger) Option {
	return func(l *Launcher) { l.Logger = logger }
}

// WithContext sets the cancellation context apps read from Launcher.Context
// to know when to shut down. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(l *Launcher) { l.Context = ctx }
}

// RunApp registers app under name.
func RunApp(name string, app App) Option {
	return func(l *Launcher) { l.apps[name] = app }
}

// Launcher owns the registered apps and the context they shut down on.
type Launcher struct {
	Logger  mlog.Logger
	Context context.Context

	apps map[string]App
	wg   *sync.WaitGroup
}

// New builds a Launcher from opts.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		Context: context.Background(),
		apps:    make(map[string]App),
		wg:      new(sync.WaitGroup),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run starts every registered app in its own goroutine and blocks until
// all of them return, which normally happens once Launcher.Context is
// cancelled.
func (l *Launcher) Run() {
	l.wg.Add(len(l.apps))

	l.Logger.Infof("launcher: starting %d app(s)", len(l.apps))

	for name, app := range l.apps {
		go func(name string, app App) {
			defer l.wg.Done()

			l.Logger.Infof("launcher: app (%s) starting", name)

			if err := app.Run(l); err != nil {
				l.Logger.Errorf("launcher: app (%s) stopped with error: %s", name, err)
			}

			l.Logger.Infof("launcher: app (%s) finished", name)
		}(name, app)
	}

	l.wg.Wait()

	l.Logger.Info("launcher: terminated")
}
