package commands

import (
	"Vibes/internal/cli/bootstrap"
	"Vibes/internal/config"
	"context"
	"fmt"
	"strings"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Запросить одноразовый код входа на e-mail" }
func (loginCmd) Usage() string       { return "login <email>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || !strings.Contains(args[0], "@") {
		return ErrUsage
	}
	email := args[0]
	gw := bootstrap.NewGateway(cfg)
	if err := gw.RequestOTP(ctx, email); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Код отправлен на %s. Завершите вход: verify %s <code>\n", email, email)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
