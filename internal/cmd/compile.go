package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flashresume/flashresume/internal/compiler"
	"github.com/flashresume/flashresume/internal/log"
)

func compileCmd() *cobra.Command {
	var (
		output    string
		skipCheck bool
	)

	cmd := cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a résumé to PDF with the selected theme.",
		Long: `Compile a résumé to PDF. The theme directory is copied to a scratch
directory so that imports like "src/resume.typ" resolve, and the file is
compiled there with compiler.command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.Get()

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []compiler.Option{
				compiler.WithTimeout(cfg.CompilerTimeout),
				compiler.WithLogger(logger),
			}

			if name := themeName(); name != "" {
				c, err := loadCatalog(cmd.Context())
				if err != nil {
					return err
				}
				t, err := c.Get(name)
				if err != nil {
					return err
				}
				opts = append(
					opts,
					compiler.WithThemeDir(filepath.Join(themesDir(), filepath.FromSlash(t.Dir))),
					compiler.WithMainFile(t.Descriptor.MainFile),
				)
			}

			typst, err := compiler.NewTypst(cfg.CompilerCommand, opts...)
			if err != nil {
				return err
			}

			if !skipCheck {
				v, err := typst.CheckVersion(cmd.Context(), cfg.CompilerMinVersion)
				if err != nil {
					return err
				}
				logger.Debug("compiler version", zap.String("version", v.String()))
			}

			pdf, err := typst.Compile(cmd.Context(), text)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(pdf)
				return errors.WithStack(err)
			}

			if err := os.WriteFile(resolvePath(output), pdf, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %q", output)
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(pdf))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file. Defaults to stdout.")
	cmd.Flags().BoolVar(&skipCheck, "skip-version-check", false, "Do not check the compiler against compiler.min_version.")

	return &cmd
}
