package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flashresume/flashresume/pkg/document/editor"
)

func spliceCmd() *cobra.Command {
	var (
		templateFile string
		output       string
	)

	cmd := cobra.Command{
		Use:   "splice FILE",
		Short: "Put the content of a résumé into a theme's main file.",
		Long: `Keep everything of the theme's main file up to and including the line
` + editor.BoundaryMarker + `
and replace the rest with the content following the same line in FILE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var template []byte
			if templateFile != "" {
				template, err = os.ReadFile(resolvePath(templateFile))
				if err != nil {
					return errors.Wrapf(err, "failed to read template %q", templateFile)
				}
			} else {
				c, err := loadCatalog(cmd.Context())
				if err != nil {
					return err
				}
				template, err = c.MainContent(themeName())
				if err != nil {
					return err
				}
			}

			result, err := editor.Splice(template, doc)
			if err != nil {
				return err
			}

			if output != "" {
				return errors.Wrapf(os.WriteFile(resolvePath(output), result, 0o644), "failed to write %q", output)
			}
			_, err = cmd.OutOrStdout().Write(result)
			return errors.WithStack(err)
		},
	}

	cmd.Flags().StringVar(&templateFile, "template", "", "Template file to use instead of the theme's main file.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a file instead of stdout.")

	return &cmd
}
