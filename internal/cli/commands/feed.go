package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
	"strconv"
)

const defaultFeedLimit = 12

type feedCmd struct{}

func (feedCmd) Name() string        { return "feed" }
func (feedCmd) Description() string { return "Показать страницу ленты (офлайн — закладки)" }
func (feedCmd) Usage() string       { return "feed [offset] [limit] [type]" }

func (feedCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 3 {
		return ErrUsage
	}
	offset, limit := 0, defaultFeedLimit
	vibeType := ""
	var err error
	if len(args) >= 1 {
		if offset, err = strconv.Atoi(args[0]); err != nil || offset < 0 {
			return ErrUsage
		}
	}
	if len(args) >= 2 {
		if limit, err = strconv.Atoi(args[1]); err != nil || limit <= 0 {
			return ErrUsage
		}
	}
	if len(args) == 3 {
		vibeType = args[2]
	}

	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	vibes, fromCache, err := env.Feed.Page(ctx, offset, limit, vibeType)
	if err != nil {
		return err
	}
	if fromCache {
		fmt.Fprintln(Out, "Сервер недоступен — показаны сохранённые закладки")
	}
	if len(vibes) == 0 {
		fmt.Fprintln(Out, "Лента пуста")
		return nil
	}
	for _, v := range vibes {
		kiss := ""
		if v.IsChefsKiss {
			kiss = " *"
		}
		fmt.Fprintf(Out, "- %s  [%s] %s — %s%s\n", v.ID, v.Type, v.Title, v.Author, kiss)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(vibes))
	return nil
}

func init() { RegisterCmd(feedCmd{}) }
