package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func fmtCmd() *cobra.Command {
	var write bool

	cmd := cobra.Command{
		Use:   "fmt FILE",
		Short: "Rewrite a résumé in canonical form.",
		Long: `Parse a résumé into blocks and serialize it back. Sections are reordered,
headings are regenerated and lines that do not belong to any block are dropped.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}
			return writeOutput(cmd, args[0], store.Text(), write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")

	return &cmd
}
