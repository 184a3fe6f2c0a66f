package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/service"
	"Vibes/internal/config"
	"context"
	"fmt"
)

// runToggle — общий ход команд bookmark и like: получить вайб,
// переключить запись, доложить исход.
func runToggle(
	ctx context.Context,
	cfg *config.Config,
	postID string,
	toggle func(env *bootstrap.Env) func(context.Context, model.Vibe) (service.ToggleResult, error),
	added, removed string,
) error {
	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	v, err := env.Feed.Vibe(ctx, postID)
	if err != nil {
		return err
	}
	res, err := toggle(env)(ctx, *v)
	if err != nil {
		return err
	}
	if res == service.ToggleAdded {
		fmt.Fprintf(Out, "%s: %s\n", added, v.Title)
	} else {
		fmt.Fprintf(Out, "%s: %s\n", removed, v.Title)
	}
	return nil
}

type bookmarkCmd struct{}

func (bookmarkCmd) Name() string        { return "bookmark" }
func (bookmarkCmd) Description() string { return "Добавить или убрать вайб из закладок" }
func (bookmarkCmd) Usage() string       { return "bookmark <vibe-id>" }

func (bookmarkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return runToggle(ctx, cfg, args[0],
		func(env *bootstrap.Env) func(context.Context, model.Vibe) (service.ToggleResult, error) {
			return env.Engagement.ToggleBookmark
		},
		"Закладка добавлена", "Закладка снята")
}

type likeCmd struct{}

func (likeCmd) Name() string        { return "like" }
func (likeCmd) Description() string { return "Поставить или снять лайк" }
func (likeCmd) Usage() string       { return "like <vibe-id>" }

func (likeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return runToggle(ctx, cfg, args[0],
		func(env *bootstrap.Env) func(context.Context, model.Vibe) (service.ToggleResult, error) {
			return env.Engagement.ToggleLike
		},
		"Лайк поставлен", "Лайк снят")
}

func init() {
	RegisterCmd(bookmarkCmd{})
	RegisterCmd(likeCmd{})
}
