package commands

import (
	"context"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/store"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type categoriesListCmd struct{}

func (categoriesListCmd) Name() string        { return "categories" }
func (categoriesListCmd) Description() string { return "List product categories" }
func (categoriesListCmd) Usage() string       { return "categories [--page N] [--find substr]" }

func (categoriesListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("categories", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	categories := store.NewCategories(client)
	if err := categories.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(categories.Records))
	for _, c := range categories.Records {
		rows = append(rows, []string{c.ID, c.Name.Uz, c.Name.Ru})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "NAME (UZ)", "NAME (RU)"}, rows)
	view.PageFooter(Out, categories.Meta)
	return nil
}

type categoryAddCmd struct{}

func (categoryAddCmd) Name() string        { return "category-add" }
func (categoryAddCmd) Description() string { return "Create a product category" }
func (categoryAddCmd) Usage() string       { return "category-add" }

func (categoryAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, _ := bootstrap.Session(cfg)
	categories := store.NewCategories(client)
	categories.EnterCreateMode()

	name, err := view.PromptLocalized(In, Out, "Name")
	if err != nil {
		return err
	}
	categories.Draft.Name = name

	if err := categories.Create(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Category created")
	return nil
}

type categoryEditCmd struct{}

func (categoryEditCmd) Name() string        { return "category-edit" }
func (categoryEditCmd) Description() string { return "Rename a category (empty input keeps a field)" }
func (categoryEditCmd) Usage() string       { return "category-edit <id>" }

func (categoryEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id := args[0]
	client, _ := bootstrap.Session(cfg)
	categories := store.NewCategories(client)
	if _, err := categories.GetByID(ctx, id); err != nil {
		return err
	}

	name, err := promptLocalizedKeep("Name", categories.Draft.Name)
	if err != nil {
		return err
	}
	categories.Draft.Name = name

	if err := categories.Update(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Category updated")
	return nil
}

type categoryRmCmd struct{}

func (categoryRmCmd) Name() string        { return "category-rm" }
func (categoryRmCmd) Description() string { return "Delete a category" }
func (categoryRmCmd) Usage() string       { return "category-rm <id>" }

func (categoryRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Delete category %s?", args[0])) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	categories := store.NewCategories(client)
	if err := categories.DeleteByID(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Category deleted")
	return nil
}

func init() {
	RegisterCmd(categoriesListCmd{})
	RegisterCmd(categoryAddCmd{})
	RegisterCmd(categoryEditCmd{})
	RegisterCmd(categoryRmCmd{})
}
