package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var strict bool

	cmd := cobra.Command{
		Use:   "check FILE",
		Short: "Report blocks the selected theme cannot render.",
		Long: `Report blocks the selected theme cannot render. Without a theme, or when
the theme has no valid configuration, every block is considered supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			descriptor := loadDescriptor(cmd.Context())
			if descriptor == nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "no configuration for theme %q, all blocks are treated as supported\n", themeName())
			}

			report := store.Check(descriptor)

			warn := color.New(color.FgYellow)
			if _, ok := terminalFile(cmd.OutOrStdout()); !ok {
				warn.DisableColor()
			}
			for _, f := range report.Unsupported {
				_, _ = warn.Fprintf(cmd.OutOrStdout(), "warning: %s %s in %s is not supported by %s\n", f.Kind, f.BlockID, f.SectionID, report.Theme)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d blocks checked, %d unsupported\n", report.Checked, len(report.Unsupported))

			if strict && !report.OK() {
				return errors.Errorf("theme %s does not support %d blocks", report.Theme, len(report.Unsupported))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any block is unsupported.")

	return &cmd
}
