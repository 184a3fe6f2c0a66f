package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Выйти и стереть локальные данные аккаунта" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	if err := env.Auth.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Выход выполнен, локальный кеш очищен")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
