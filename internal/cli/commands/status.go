package commands

import (
	"context"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show session state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, sess := bootstrap.Session(cfg)
	if !sess.Authenticated {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	fmt.Fprintln(Out, "Logged in")
	if sess.User != nil {
		fmt.Fprintf(Out, "  id:    %s\n", sess.User.ID)
		fmt.Fprintf(Out, "  phone: %s\n", sess.User.PhoneNumber)
	}
	fmt.Fprintf(Out, "  api:   %s\n", cfg.APIBaseURL)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
