package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flashresume/flashresume/internal/log"
)

var (
	fChdir      string
	fConfigFile string
	fThemeName  string
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "flashresume",
		Short:         "Edit, check and compile Typst résumés block by block",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Switch to a different working directory before executing the command.")
	pflags.StringVar(&fConfigFile, "config", "", "Path to the configuration file. Defaults to flashresume.yaml in the working directory.")
	pflags.StringVar(&fThemeName, "theme", "", "Theme to check against or compile with. Defaults to themes.default from the configuration.")

	cmd.AddCommand(addCmd())
	cmd.AddCommand(blocksCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(compileCmd())
	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(kindsCmd())
	cmd.AddCommand(mvCmd())
	cmd.AddCommand(outlineCmd())
	cmd.AddCommand(rmCmd())
	cmd.AddCommand(sectionsCmd())
	cmd.AddCommand(spliceCmd())
	cmd.AddCommand(themesCmd())

	return &cmd
}
