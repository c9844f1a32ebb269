package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/view"
)

// listArgs are the flags every list command shares.
type listArgs struct {
	page int
	find string
}

func parseListArgs(name string, args []string) (listArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	la := listArgs{}
	fs.IntVar(&la.page, "page", 1, "page number")
	fs.StringVar(&la.find, "find", "", "substring filter over the fetched page")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return la, ErrUsage
	}
	return la, nil
}

// promptLocalizedKeep prompts for both languages of a field, keeping the
// current value when the user just presses enter. Used by edit commands so
// the form opens pre-populated.
func promptLocalizedKeep(label string, cur model.Localized) (model.Localized, error) {
	uz, err := promptKeep(label+" (uz)", cur.Uz)
	if err != nil {
		return cur, err
	}
	ru, err := promptKeep(label+" (ru)", cur.Ru)
	if err != nil {
		return cur, err
	}
	return model.Localized{Uz: uz, Ru: ru}, nil
}

func promptKeep(label, cur string) (string, error) {
	if cur != "" {
		label = fmt.Sprintf("%s [%s]", label, cur)
	}
	v, err := view.Prompt(In, Out, label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return cur, nil
	}
	return v, nil
}

// shorten trims long cell values so tables stay readable.
func shorten(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
