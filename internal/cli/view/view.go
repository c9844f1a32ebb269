// Package view holds the small rendering and prompting helpers shared by the
// CLI commands: list tables with a pagination footer, localized field
// prompts, hidden password input and yes/no confirmation gates.
package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"AtlasAdmin/internal/cli/model"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Table renders rows under a header with columns padded to their widest cell.
func Table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts[i] = pad(cell, widths[i])
			} else {
				parts[i] = cell
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
}

func pad(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// PageFooter prints the advisory "where am I" line under a list.
func PageFooter(w io.Writer, meta model.Meta) {
	fmt.Fprintf(w, "page %d/%d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
}

// FilterRows keeps rows where any cell contains substr, case-insensitive.
// Cosmetic filtering over the already-fetched page only.
func FilterRows(rows [][]string, substr string) [][]string {
	if substr == "" {
		return rows
	}
	needle := strings.ToLower(substr)
	out := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Prompt prints a label and reads one trimmed line.
func Prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLocalized reads the uz and ru variants of one field.
func PromptLocalized(r *bufio.Reader, w io.Writer, label string) (model.Localized, error) {
	uz, err := Prompt(r, w, label+" (uz)")
	if err != nil {
		return model.Localized{}, err
	}
	ru, err := Prompt(r, w, label+" (ru)")
	if err != nil {
		return model.Localized{}, err
	}
	return model.Localized{Uz: uz, Ru: ru}, nil
}

// PromptPassword reads a password from the terminal without echo.
func PromptPassword(w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm renders a yes/no gate. Anything but y/yes counts as no.
func Confirm(r *bufio.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
