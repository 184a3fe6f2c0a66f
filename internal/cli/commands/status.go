package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/cli/repo"
	fsrepo "Vibes/internal/cli/repo/fs"
	"Vibes/internal/config"
	"context"
	"errors"
	"fmt"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать состояние сессии, кеша и связи" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	gw := bootstrap.NewGateway(cfg)
	if err := gw.Ping(ctx); err != nil {
		fmt.Fprintln(Out, "Сервер: недоступен")
	} else {
		fmt.Fprintln(Out, "Сервер: доступен")
	}

	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	if err != nil {
		fmt.Fprintln(Out, "Сессия: нет активного пользователя")
		return nil
	}
	fmt.Fprintf(Out, "Логин: %s\n", login)

	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	user, err := env.Store.Users().Current(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fmt.Fprintln(Out, "Кеш: пользователь не синхронизирован (выполните sync)")
			return nil
		}
		return err
	}
	nbm, _ := env.Store.Bookmarks().Count(ctx)
	nlk, _ := env.Store.Likes().Count(ctx)
	fmt.Fprintf(Out, "Пользователь: %s (%s)\n", user.Name, user.ID)
	fmt.Fprintf(Out, "Прокручено: %d, прочитано: %d\n", len(user.ScrolledPosts), len(user.ReadPosts))
	fmt.Fprintf(Out, "Закладок: %d, лайков: %d\n", nbm, nlk)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
