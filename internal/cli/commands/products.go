package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/store"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type productsListCmd struct{}

func (productsListCmd) Name() string        { return "products" }
func (productsListCmd) Description() string { return "List catalog products" }
func (productsListCmd) Usage() string       { return "products [--page N] [--find substr]" }

func (productsListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("products", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	products := store.NewProducts(client)
	if err := products.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(products.Records))
	for _, p := range products.Records {
		category := p.CategoryID
		if p.Category != nil {
			category = p.Category.Name.Uz
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			shorten(p.Name.Uz, 36),
			// model is free text; always rendered as plain cell content
			shorten(p.Model, 24),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			shorten(category, 24),
			strconv.Itoa(len(p.Images)),
		})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "NAME", "MODEL", "PRICE", "CATEGORY", "IMAGES"}, rows)
	view.PageFooter(Out, products.Meta)
	return nil
}

type productGetCmd struct{}

func (productGetCmd) Name() string        { return "product-get" }
func (productGetCmd) Description() string { return "Show one product with details and gallery" }
func (productGetCmd) Usage() string       { return "product-get <id>" }

func (productGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, _ := bootstrap.Session(cfg)
	products := store.NewProducts(client)
	p, err := products.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:       %d\n", p.ID)
	fmt.Fprintf(Out, "name:     uz=%s | ru=%s\n", p.Name.Uz, p.Name.Ru)
	fmt.Fprintf(Out, "model:    %s\n", p.Model)
	fmt.Fprintf(Out, "price:    %s\n", strconv.FormatFloat(p.Price, 'f', -1, 64))
	if p.Category != nil {
		fmt.Fprintf(Out, "category: %s (%s)\n", p.Category.Name.Uz, p.CategoryID)
	} else {
		fmt.Fprintf(Out, "category: %s\n", p.CategoryID)
	}
	printDetails(Out, "details (uz)", p.Details.Uz)
	printDetails(Out, "details (ru)", p.Details.Ru)
	for i, img := range p.Images {
		fmt.Fprintf(Out, "image %d:  %s\n", i+1, cfg.UploadURL(img.Path))
	}
	return nil
}

func printDetails(w io.Writer, label string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	for k, v := range m {
		fmt.Fprintf(w, "  %s = %s\n", k, v)
	}
}

type productAddCmd struct{}

func (productAddCmd) Name() string { return "product-add" }
func (productAddCmd) Description() string {
	return "Create a product (repeat --image for the gallery)"
}
func (productAddCmd) Usage() string {
	return "product-add --category id [--price N] [--model text] [--image path]..."
}

func (productAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("product-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	categoryID := fs.String("category", "", "category id")
	price := fs.Float64("price", 0, "price")
	modelName := fs.String("model", "", "model name")
	var images imageList
	fs.Var(&images, "image", "path to a gallery image (repeatable)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	products := store.NewProducts(client)
	products.EnterCreateMode()
	defer products.ClearDraft()

	name, err := view.PromptLocalized(In, Out, "Name")
	if err != nil {
		return err
	}
	products.Draft.Name = name
	products.Draft.Price = *price
	products.Draft.Model = *modelName
	products.Draft.CategoryID = *categoryID
	if err := promptProductDetails(products.Draft); err != nil {
		return err
	}
	for _, path := range images {
		staged, err := model.StageFile(path)
		if err != nil {
			return err
		}
		if err := products.Draft.StageImage(staged); err != nil {
			return err
		}
	}

	if err := products.Create(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Product created")
	return nil
}

type productEditCmd struct{}

func (productEditCmd) Name() string { return "product-edit" }
func (productEditCmd) Description() string {
	return "Edit a product (empty input keeps a field)"
}
func (productEditCmd) Usage() string {
	return "product-edit <id> [--category id] [--price N] [--model text] [--image path]..."
}

func (productEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]
	fs := flag.NewFlagSet("product-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	categoryID := fs.String("category", "", "category id")
	price := fs.Float64("price", -1, "price")
	modelName := fs.String("model", "", "model name")
	var images imageList
	fs.Var(&images, "image", "replacement gallery image (repeatable)")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, _ := bootstrap.Session(cfg)
	products := store.NewProducts(client)
	if _, err := products.GetByID(ctx, id); err != nil {
		return err
	}
	defer products.ClearDraft()

	name, err := promptLocalizedKeep("Name", products.Draft.Name)
	if err != nil {
		return err
	}
	products.Draft.Name = name
	if *categoryID != "" {
		products.Draft.CategoryID = *categoryID
	}
	if *price >= 0 {
		products.Draft.Price = *price
	}
	if *modelName != "" {
		products.Draft.Model = *modelName
	}
	for _, path := range images {
		staged, err := model.StageFile(path)
		if err != nil {
			return err
		}
		if err := products.Draft.StageImage(staged); err != nil {
			return err
		}
	}

	if err := products.Update(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Product updated")
	return nil
}

type productRmCmd struct{}

func (productRmCmd) Name() string        { return "product-rm" }
func (productRmCmd) Description() string { return "Delete a product" }
func (productRmCmd) Usage() string       { return "product-rm <id>" }

func (productRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Delete product %s?", args[0])) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	products := store.NewProducts(client)
	if err := products.DeleteByID(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Product deleted")
	return nil
}

// promptProductDetails reads "key = value" spec lines per language until an
// empty line, respecting the per-language cap.
func promptProductDetails(d *model.ProductDraft) error {
	for _, lang := range []string{"uz", "ru"} {
		fmt.Fprintf(Out, "Details (%s), key=value per line, empty line to finish:\n", lang)
		for {
			line, err := view.Prompt(In, Out, ">")
			if err != nil {
				return err
			}
			if line == "" {
				break
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				fmt.Fprintln(Out, "expected key=value")
				continue
			}
			if err := d.SetDetail(lang, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// imageList accumulates repeated --image flags.
type imageList []string

func (l *imageList) String() string { return strings.Join(*l, ",") }
func (l *imageList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func init() {
	RegisterCmd(productsListCmd{})
	RegisterCmd(productGetCmd{})
	RegisterCmd(productAddCmd{})
	RegisterCmd(productEditCmd{})
	RegisterCmd(productRmCmd{})
}
