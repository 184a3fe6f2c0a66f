package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
)

type syncCmd struct{}

func (syncCmd) Name() string        { return "sync" }
func (syncCmd) Description() string { return "Сверить локальный кеш с сервером" }
func (syncCmd) Usage() string       { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	if err := env.Reconciler.Reconcile(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Сверка завершена")
	return nil
}

func init() { RegisterCmd(syncCmd{}) }
