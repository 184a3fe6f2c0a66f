package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
	"strings"
)

type verifyCmd struct{}

func (verifyCmd) Name() string        { return "verify" }
func (verifyCmd) Description() string { return "Обменять одноразовый код на сессию" }
func (verifyCmd) Usage() string       { return "verify <email> <code>" }

func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || !strings.Contains(args[0], "@") {
		return ErrUsage
	}
	email, code := args[0], args[1]

	// логин ещё не сохранён, поэтому окружение открываем явно под e-mail
	env, done, err := bootstrap.OpenEnvForLogin(cfg, email)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	authID, err := env.Auth.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Вход выполнен: %s\n", authID)

	// сразу приводим локальный кеш в соответствие серверу
	if err := env.Reconciler.Reconcile(ctx); err != nil {
		return fmt.Errorf("первичная сверка: %w", err)
	}
	fmt.Fprintln(Out, "Локальный кеш синхронизирован")
	return nil
}

func init() { RegisterCmd(verifyCmd{}) }
