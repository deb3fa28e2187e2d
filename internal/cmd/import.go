package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flashresume/flashresume/internal/log"
	"github.com/flashresume/flashresume/pkg/document/editor"
)

func importCmd() *cobra.Command {
	var output string

	cmd := cobra.Command{
		Use:   "import FILE",
		Short: "Generate a résumé from JSON data.",
		Long: `Generate a résumé from JSON data holding personalInfo and a list of
sections. Each section item names a markup function in "type" and its
arguments in "data". Use "-" to read from stdin.`,
		Example: `  flashresume import resume.json --output resume.typ`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			resume, err := editor.ParseResume(data)
			if err != nil {
				return err
			}

			store, err := newStore(log.Get())
			if err != nil {
				return err
			}

			text, err := store.Import(resume)
			if err != nil {
				return errors.Wrap(err, "failed to import résumé")
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "imported %d blocks\n", len(store.Blocks()))

			return writeOutput(cmd, output, text, output != "")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the résumé to a file instead of stdout.")

	return &cmd
}
