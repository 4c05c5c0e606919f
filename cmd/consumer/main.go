// Command consumer drains the gateway's single own queue, reconciling
// scheduler/reporter callbacks into Mongo (§4.5). Grounded the same way as
// cmd/gateway: the teacher's pre-wire main.go shape, adapted onto
// pkg/envconfig and internal/bootstrap.
package main

import (
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

	worker := bootstrap.NewConsumerApp(deps.MQRuntime, deps.MQRuntime.OwnQueue, deps.Consumer.Dispatch)

	launcher.New(
		launcher.WithLogger(logger),
		launcher.WithContext(ctx),
		launcher.RunApp("consumer", worker),
	).Run()
}
