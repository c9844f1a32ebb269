package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/store"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type bannersListCmd struct{}

func (bannersListCmd) Name() string        { return "banners" }
func (bannersListCmd) Description() string { return "List storefront banners" }
func (bannersListCmd) Usage() string       { return "banners [--page N] [--find substr]" }

func (bannersListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("banners", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	banners := store.NewBanners(client)
	if err := banners.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(banners.Records))
	for _, b := range banners.Records {
		title := ""
		if b.Title != nil {
			title = b.Title.Uz
		}
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			shorten(title, 40),
			cfg.UploadURL(b.ImageURL),
			b.CreatedAt,
		})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "TITLE", "IMAGE", "CREATED"}, rows)
	view.PageFooter(Out, banners.Meta)
	return nil
}

type bannerAddCmd struct{}

func (bannerAddCmd) Name() string        { return "banner-add" }
func (bannerAddCmd) Description() string { return "Create a banner (image required)" }
func (bannerAddCmd) Usage() string       { return "banner-add --image path" }

func (bannerAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("banner-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	imagePath := fs.String("image", "", "path to the banner image")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	banners := store.NewBanners(client)
	banners.EnterCreateMode()
	defer banners.ClearDraft()

	title, err := view.PromptLocalized(In, Out, "Title")
	if err != nil {
		return err
	}
	text, err := view.PromptLocalized(In, Out, "Text")
	if err != nil {
		return err
	}
	banners.Draft.Title = title
	banners.Draft.Text = text
	if *imagePath != "" {
		staged, err := model.StageFile(*imagePath)
		if err != nil {
			return err
		}
		banners.Draft.StageImage(staged)
	}

	if err := banners.Create(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Banner created")
	return nil
}

type bannerEditCmd struct{}

func (bannerEditCmd) Name() string        { return "banner-edit" }
func (bannerEditCmd) Description() string { return "Edit a banner (empty input keeps a field)" }
func (bannerEditCmd) Usage() string       { return "banner-edit <id> [--image path]" }

func (bannerEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]
	fs := flag.NewFlagSet("banner-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	imagePath := fs.String("image", "", "replacement image; omit to keep the current one")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	banners := store.NewBanners(client)
	if _, err := banners.GetByID(ctx, id); err != nil {
		return err
	}
	defer banners.ClearDraft()

	title, err := promptLocalizedKeep("Title", banners.Draft.Title)
	if err != nil {
		return err
	}
	text, err := promptLocalizedKeep("Text", banners.Draft.Text)
	if err != nil {
		return err
	}
	banners.Draft.Title = title
	banners.Draft.Text = text
	if *imagePath != "" {
		staged, err := model.StageFile(*imagePath)
		if err != nil {
			return err
		}
		banners.Draft.StageImage(staged)
	}

	if err := banners.Update(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Banner updated")
	return nil
}

type bannerRmCmd struct{}

func (bannerRmCmd) Name() string        { return "banner-rm" }
func (bannerRmCmd) Description() string { return "Delete a banner" }
func (bannerRmCmd) Usage() string       { return "banner-rm <id>" }

func (bannerRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Delete banner %s?", args[0])) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	banners := store.NewBanners(client)
	if err := banners.DeleteByID(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Banner deleted")
	return nil
}

func init() {
	RegisterCmd(bannersListCmd{})
	RegisterCmd(bannerAddCmd{})
	RegisterCmd(bannerEditCmd{})
	RegisterCmd(bannerRmCmd{})
}
