package commands

import (
	"context"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Authenticate and store the access token" }
func (loginCmd) Usage() string       { return "login <phone>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	phone := args[0]
	password, err := view.PromptPassword(Out, "Password")
	if err != nil {
		return err
	}

	_, sess := bootstrap.Session(cfg)
	if err := sess.Login(ctx, phone, password); err != nil {
		return fmt.Errorf("%s", sess.Err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
