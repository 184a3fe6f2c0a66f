package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/cli/connectivity"
	"Vibes/internal/config"
	"context"
	"fmt"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Следить за связью и сверять кеш при восстановлении (Ctrl+C — выход)"
}
func (watchCmd) Usage() string { return "watch" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	monitor := connectivity.NewMonitor(env.Gateway.Ping, cfg.PingInterval(), env.Logger)
	monitor.OnOnline(func(ctx context.Context) {
		fmt.Fprintln(Out, "Связь восстановлена — сверяем кеш")
		if err := env.Reconciler.Reconcile(ctx); err != nil {
			env.Logger.Warnw("reconcile on reconnect failed", "error", err)
		}
	})

	fmt.Fprintf(Out, "Опрос сервера каждые %v\n", cfg.PingInterval())
	monitor.Run(ctx)
	return nil
}

func init() { RegisterCmd(watchCmd{}) }
