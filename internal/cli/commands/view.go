package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
	"time"
)

type viewCmd struct{}

func (viewCmd) Name() string        { return "view" }
func (viewCmd) Description() string { return "Подержать вайб на экране: после порога он считается просмотренным" }
func (viewCmd) Usage() string       { return "view <vibe-id>" }

func (viewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	postID := args[0]

	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	// трекер смотрит на сессию — заполняем её из кеша
	user, err := env.Store.Users().Current(ctx)
	if err != nil {
		return fmt.Errorf("нет локального пользователя: выполните sync: %w", err)
	}
	env.Session.SetUser(user)
	if user.HasSeen(postID) {
		fmt.Fprintln(Out, "Вайб уже просмотрен")
		return nil
	}

	v, err := env.Feed.Vibe(ctx, postID)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "[%s] %s — %s\n", v.Type, v.Title, v.Author)

	env.Tracker.Enter(ctx, postID)
	fmt.Fprintf(Out, "Держим на экране %v...\n", cfg.DwellThreshold())
	select {
	case <-ctx.Done():
		env.Tracker.Exit(postID)
		return ctx.Err()
	case <-time.After(cfg.DwellThreshold() + 100*time.Millisecond):
	}

	if env.Session.User().HasSeen(postID) {
		fmt.Fprintln(Out, "Вайб отмечен просмотренным")
	} else {
		fmt.Fprintln(Out, "Отметка не прошла (сервер недоступен?) — кеш не изменён")
	}
	return nil
}

func init() { RegisterCmd(viewCmd{}) }
