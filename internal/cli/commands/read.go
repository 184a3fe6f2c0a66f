package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
)

type readCmd struct{}

func (readCmd) Name() string        { return "read" }
func (readCmd) Description() string { return "Открыть вайб целиком и отметить прочитанным" }
func (readCmd) Usage() string       { return "read <vibe-id>" }

func (readCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	postID := args[0]

	env, done, err := bootstrap.OpenEnv(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	v, err := env.Feed.Vibe(ctx, postID)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s\n%s\n\n%s\n", v.Title, v.URL, v.Content)

	if err := env.Tracker.MarkRead(ctx, postID); err != nil {
		return fmt.Errorf("отметка о прочтении: %w", err)
	}
	return nil
}

func init() { RegisterCmd(readCmd{}) }
