// Command gateway runs the HTTP control-plane surface: every resource
// route under internal/http plus the background session/lockout sweeper.
// Grounded on the teacher's pre-wire components/ledger main.go
// (common.InitLocalEnvConfig(); gen.InitializeService().Run()), adapted
// onto pkg/envconfig and internal/bootstrap instead of the generated Wire
// injector.
package main

import (
	"time"

	"github.com/bondifuzz/api-gateway/internal/bootstrap"
	"github.com/bondifuzz/api-gateway/internal/launcher"
	"github.com/bondifuzz/api-gateway/pkg/envconfig"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

func main() {
	cfg := &bootstrap.Config{}
	if err := envconfig.Load(cfg); err != nil {
		panic(err)
	}

	logger := mlog.NewZapLogger(cfg.Environment)

	ctx, cancel := bootstrap.ShutdownContext()
	defer cancel()

	deps, err := bootstrap.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer deps.Close(ctx)

	if err := bootstrap.SeedRootUser(ctx, deps.Commands.Users, cfg); err != nil {
		logger.Fatal(err)
	}

	server := bootstrap.NewServer(cfg.ServerAddress, deps.App, logger)

	sweeper := &bootstrap.SweeperApp{
		Sessions:     deps.SessionRepo,
		Lockouts:     deps.LockoutRepo,
		FailedLogins: deps.Commands.FailedLogins,
		Interval:     time.Duration(cfg.BFPCleanupIntervalSec) * time.Second,
		Logger:       logger,
	}

	launcher.New(
		launcher.WithLogger(logger),
		launcher.WithContext(ctx),
		launcher.RunApp("http", server),
		launcher.RunApp("sweeper", sweeper),
	).Run()
}
