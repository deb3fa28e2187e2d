package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func outlineCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "outline FILE",
		Short: "Print sections and block titles of a résumé.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
			headingStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB3E0"})
			itemStyle := renderer.NewStyle().PaddingLeft(2)
			mutedStyle := renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})

			var b strings.Builder
			for _, section := range store.Schema().Sections() {
				blocks := store.Section(section.ID)
				if len(blocks) == 0 {
					continue
				}

				_, _ = b.WriteString(headingStyle.Render(section.Title))
				_ = b.WriteByte('\n')

				for _, block := range blocks {
					line := "- " + block.Title + " " + mutedStyle.Render("("+block.Kind.String()+")")
					_, _ = b.WriteString(itemStyle.Render(line))
					_ = b.WriteByte('\n')
				}
			}

			if b.Len() == 0 {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "no blocks")
				return nil
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return errors.WithStack(err)
		},
	}

	return &cmd
}
