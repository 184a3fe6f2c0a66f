package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/cli/repo"
	"Vibes/internal/config"
	"context"
	"fmt"
)

// runList печатает локальную коллекцию записей текущего пользователя.
// Список работает и в офлайне: вайбы встроены в записи.
func runList(ctx context.Context, cfg *config.Config, pick func(env *bootstrap.Env) repo.EntryRepository, empty string) error {
	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	user, err := env.Store.Users().Current(ctx)
	if err != nil {
		return fmt.Errorf("нет локального пользователя: выполните sync: %w", err)
	}
	entries, err := pick(env).ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out, empty)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(Out, "- %s  [%s] %s — %s\n", e.PostID, e.Vibe.Type, e.Vibe.Title, e.Vibe.Author)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(entries))
	return nil
}

type bookmarksCmd struct{}

func (bookmarksCmd) Name() string        { return "bookmarks" }
func (bookmarksCmd) Description() string { return "Показать сохранённые закладки" }
func (bookmarksCmd) Usage() string       { return "bookmarks" }

func (bookmarksCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return runList(ctx, cfg, func(env *bootstrap.Env) repo.EntryRepository {
		return env.Store.Bookmarks()
	}, "Нет закладок")
}

type likesCmd struct{}

func (likesCmd) Name() string        { return "likes" }
func (likesCmd) Description() string { return "Показать лайкнутые вайбы" }
func (likesCmd) Usage() string       { return "likes" }

func (likesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return runList(ctx, cfg, func(env *bootstrap.Env) repo.EntryRepository {
		return env.Store.Likes()
	}, "Нет лайков")
}

func init() {
	RegisterCmd(bookmarksCmd{})
	RegisterCmd(likesCmd{})
}
