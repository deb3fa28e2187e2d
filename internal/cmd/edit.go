package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flashresume/flashresume/pkg/document"
)

func addCmd() *cobra.Command {
	var (
		section string
		kind    string
		write   bool
	)

	cmd := cobra.Command{
		Use:   "add FILE",
		Short: "Append a block seeded with its template to a section.",
		Example: `Add an experience entry and save the file:
  flashresume add resume.typ --section experience --kind experience --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			block, text, err := store.AddBlock(document.SectionID(section), document.Kind(kind))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "added %s %s at index %d\n", block.Kind, block.ID, len(store.Section(block.SectionID))-1)

			return writeOutput(cmd, args[0], text, write)
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Section to add the block to.")
	cmd.Flags().StringVar(&kind, "kind", "", "Kind of the block.")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("kind")

	return &cmd
}

func rmCmd() *cobra.Command {
	var (
		section string
		index   int
		write   bool
	)

	cmd := cobra.Command{
		Use:   "rm FILE",
		Short: "Remove a block from a section.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			block, err := blockAt(store, section, index)
			if err != nil {
				return err
			}

			text, err := store.DeleteBlock(block.ID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "removed %s %s\n", block.Kind, block.ID)

			return writeOutput(cmd, args[0], text, write)
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Section holding the block.")
	cmd.Flags().IntVar(&index, "index", 0, "Position of the block within the section, starting at 0.")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	_ = cmd.MarkFlagRequired("section")

	return &cmd
}

func mvCmd() *cobra.Command {
	var (
		section string
		index   int
		to      int
		write   bool
	)

	cmd := cobra.Command{
		Use:   "mv FILE",
		Short: "Move a block to another position within its section.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			block, err := blockAt(store, section, index)
			if err != nil {
				return err
			}

			text, err := store.MoveBlock(block.ID, to)
			if err != nil {
				return err
			}

			return writeOutput(cmd, args[0], text, write)
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Section holding the block.")
	cmd.Flags().IntVar(&index, "index", 0, "Current position of the block within the section.")
	cmd.Flags().IntVar(&to, "to", 0, "New position of the block within the section.")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("to")

	return &cmd
}
