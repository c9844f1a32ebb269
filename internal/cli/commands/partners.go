package commands

import (
	"context"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/store"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type partnersListCmd struct{}

func (partnersListCmd) Name() string        { return "partners" }
func (partnersListCmd) Description() string { return "List partner logos" }
func (partnersListCmd) Usage() string       { return "partners [--page N]" }

func (partnersListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("partners", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	partners := store.NewPartners(client)
	if err := partners.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(partners.Records))
	for _, p := range partners.Records {
		rows = append(rows, []string{p.ID, cfg.UploadURL(p.Logo)})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "LOGO"}, rows)
	view.PageFooter(Out, partners.Meta)
	return nil
}

type partnerAddCmd struct{}

func (partnerAddCmd) Name() string        { return "partner-add" }
func (partnerAddCmd) Description() string { return "Add a partner logo" }
func (partnerAddCmd) Usage() string       { return "partner-add <logo-path>" }

func (partnerAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, _ := bootstrap.Session(cfg)
	partners := store.NewPartners(client)
	partners.EnterCreateMode()
	defer partners.ClearDraft()

	staged, err := model.StageFile(args[0])
	if err != nil {
		return err
	}
	partners.Draft.StageLogo(staged)

	if err := partners.Create(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Partner created")
	return nil
}

type partnerEditCmd struct{}

func (partnerEditCmd) Name() string        { return "partner-edit" }
func (partnerEditCmd) Description() string { return "Replace a partner logo" }
func (partnerEditCmd) Usage() string       { return "partner-edit <id> <logo-path>" }

func (partnerEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	client, _ := bootstrap.Session(cfg)
	partners := store.NewPartners(client)
	if _, err := partners.GetByID(ctx, args[0]); err != nil {
		return err
	}
	defer partners.ClearDraft()

	staged, err := model.StageFile(args[1])
	if err != nil {
		return err
	}
	partners.Draft.StageLogo(staged)

	if err := partners.Update(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Partner updated")
	return nil
}

type partnerRmCmd struct{}

func (partnerRmCmd) Name() string        { return "partner-rm" }
func (partnerRmCmd) Description() string { return "Delete a partner" }
func (partnerRmCmd) Usage() string       { return "partner-rm <id>" }

func (partnerRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Delete partner %s?", args[0])) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	partners := store.NewPartners(client)
	if err := partners.DeleteByID(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Partner deleted")
	return nil
}

func init() {
	RegisterCmd(partnersListCmd{})
	RegisterCmd(partnerAddCmd{})
	RegisterCmd(partnerEditCmd{})
	RegisterCmd(partnerRmCmd{})
}
