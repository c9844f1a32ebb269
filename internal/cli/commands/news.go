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

type newsListCmd struct{}

func (newsListCmd) Name() string        { return "news" }
func (newsListCmd) Description() string { return "List news articles" }
func (newsListCmd) Usage() string       { return "news [--page N] [--find substr]" }

func (newsListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("news", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	news := store.NewNews(client)
	if err := news.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(news.Records))
	for _, n := range news.Records {
		title := ""
		if n.Title != nil {
			title = n.Title.Uz
		}
		rows = append(rows, []string{
			strconv.FormatInt(n.ID, 10),
			shorten(title, 40),
			shorten(n.Text.Uz, 48),
			n.CreatedAt,
		})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "TITLE", "TEXT", "CREATED"}, rows)
	view.PageFooter(Out, news.Meta)
	return nil
}

type newsGetCmd struct{}

func (newsGetCmd) Name() string        { return "news-get" }
func (newsGetCmd) Description() string { return "Show one news article" }
func (newsGetCmd) Usage() string       { return "news-get <id>" }

func (newsGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, _ := bootstrap.Session(cfg)
	news := store.NewNews(client)
	n, err := news.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:      %d\n", n.ID)
	if n.Title != nil {
		fmt.Fprintf(Out, "title:   uz=%s | ru=%s\n", n.Title.Uz, n.Title.Ru)
	}
	fmt.Fprintf(Out, "text:    uz=%s | ru=%s\n", n.Text.Uz, n.Text.Ru)
	if n.ImageURL != "" {
		fmt.Fprintf(Out, "image:   %s\n", cfg.UploadURL(n.ImageURL))
	}
	fmt.Fprintf(Out, "created: %s\n", n.CreatedAt)
	return nil
}

type newsAddCmd struct{}

func (newsAddCmd) Name() string        { return "news-add" }
func (newsAddCmd) Description() string { return "Create a news article (image optional)" }
func (newsAddCmd) Usage() string       { return "news-add [--image path]" }

func (newsAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("news-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	imagePath := fs.String("image", "", "path to the article image")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	news := store.NewNews(client)
	news.EnterCreateMode()
	defer news.ClearDraft()

	title, err := view.PromptLocalized(In, Out, "Title")
	if err != nil {
		return err
	}
	text, err := view.PromptLocalized(In, Out, "Text")
	if err != nil {
		return err
	}
	news.Draft.Title = title
	news.Draft.Text = text
	if *imagePath != "" {
		staged, err := model.StageFile(*imagePath)
		if err != nil {
			return err
		}
		news.Draft.StageImage(staged)
		fmt.Fprintf(Out, "staged %s (%s, %d bytes)\n", staged.Name, staged.ContentType, staged.Size)
	}

	if err := news.Create(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ News created")
	return nil
}

type newsEditCmd struct{}

func (newsEditCmd) Name() string        { return "news-edit" }
func (newsEditCmd) Description() string { return "Edit a news article (empty input keeps a field)" }
func (newsEditCmd) Usage() string       { return "news-edit <id> [--image path]" }

func (newsEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]
	fs := flag.NewFlagSet("news-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	imagePath := fs.String("image", "", "replacement image; omit to keep the current one")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	news := store.NewNews(client)
	if _, err := news.GetByID(ctx, id); err != nil {
		return err
	}
	defer news.ClearDraft()

	title, err := promptLocalizedKeep("Title", news.Draft.Title)
	if err != nil {
		return err
	}
	text, err := promptLocalizedKeep("Text", news.Draft.Text)
	if err != nil {
		return err
	}
	news.Draft.Title = title
	news.Draft.Text = text
	if *imagePath != "" {
		staged, err := model.StageFile(*imagePath)
		if err != nil {
			return err
		}
		news.Draft.StageImage(staged)
	}

	if err := news.Update(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ News updated")
	return nil
}

type newsRmCmd struct{}

func (newsRmCmd) Name() string        { return "news-rm" }
func (newsRmCmd) Description() string { return "Delete a news article" }
func (newsRmCmd) Usage() string       { return "news-rm <id>" }

func (newsRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Delete news %s?", args[0])) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	news := store.NewNews(client)
	if err := news.DeleteByID(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ News deleted")
	return nil
}

func init() {
	RegisterCmd(newsListCmd{})
	RegisterCmd(newsGetCmd{})
	RegisterCmd(newsAddCmd{})
	RegisterCmd(newsEditCmd{})
	RegisterCmd(newsRmCmd{})
}
