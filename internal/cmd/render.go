package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const defaultTableWidth = 80

// terminalFile returns the file behind w if w is an interactive terminal.
// Output captured by tests or piped to another program is not.
func terminalFile(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return nil, false
	}
	return f, isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newTablePrinter prints aligned columns on a terminal and tab-separated
// values otherwise.
func newTablePrinter(cmd *cobra.Command) tableprinter.TablePrinter {
	out := cmd.OutOrStdout()

	f, isTTY := terminalFile(out)
	width := defaultTableWidth
	if isTTY {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return tableprinter.New(out, isTTY, width)
}

func renderJSON(cmd *cobra.Command, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(
		jsonpretty.Format(cmd.OutOrStdout(), bytes.NewReader(raw), "  ", false),
	)
}

func validateFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return errors.Errorf("invalid format: %s", format)
	}
}

func registerFormatFlag(flags *pflag.FlagSet, format *string) {
	flags.StringVar(format, "format", "table", "Output format (table, json)")
}
