package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flashresume/flashresume/internal/ulid"
	"github.com/flashresume/flashresume/pkg/document"
	"github.com/flashresume/flashresume/pkg/theme"
)

type blockRow struct {
	*document.Block
	Supported bool `json:"supported"`
	// Created is set for ULID identities only.
	Created *time.Time `json:"created,omitempty"`
}

func blocksCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:     "blocks FILE",
		Aliases: []string{"ls"},
		Short:   "List blocks of a résumé.",
		Long: `List blocks of a résumé in canonical section order. The SUPPORTED column
tells whether the selected theme can render the block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			store, err := loadStore(cmd, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to load document")
			}

			report := store.Check(loadDescriptor(cmd.Context()))

			rows := []blockRow{}
			for _, section := range store.Schema().Sections() {
				for _, block := range store.Section(section.ID) {
					row := blockRow{
						Block:     block,
						Supported: report.Supported(block.ID),
					}
					if created, ok := ulid.Timestamp(block.ID); ok {
						row.Created = &created
					}
					rows = append(rows, row)
				}
			}

			if format == "json" {
				return renderJSON(cmd, rows)
			}

			table := newTablePrinter(cmd)

			// table header
			table.AddField(strings.ToUpper("Section"))
			table.AddField(strings.ToUpper("Index"))
			table.AddField(strings.ToUpper("Kind"))
			table.AddField(strings.ToUpper("Title"))
			table.AddField(strings.ToUpper("ID"))
			table.AddField(strings.ToUpper("Supported"))
			table.EndRow()

			index := map[document.SectionID]int{}
			for _, row := range rows {
				table.AddField(row.SectionID.String())
				table.AddField(strconv.Itoa(index[row.SectionID]))
				table.AddField(row.Kind.String())
				table.AddField(row.Title)
				table.AddField(row.ID)
				table.AddField(yesNo(row.Supported))
				table.EndRow()
				index[row.SectionID]++
			}

			return errors.WithStack(table.Render())
		},
	}

	registerFormatFlag(cmd.Flags(), &format)

	return &cmd
}

func kindsCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "kinds",
		Short: "List block kinds and their markup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			types := document.DefaultRegistry().Types()
			schema := document.DefaultSchema()

			if format == "json" {
				type kindRow struct {
					Kind      document.Kind      `json:"kind"`
					Label     string             `json:"label"`
					Signature string             `json:"signature"`
					Section   document.SectionID `json:"section"`
					Template  string             `json:"template"`
				}
				rows := make([]kindRow, 0, len(types))
				for _, t := range types {
					rows = append(rows, kindRow{
						Kind:      t.Kind,
						Label:     t.Label,
						Signature: t.Signature(),
						Section:   schema.Classify(t.Kind),
						Template:  t.Template,
					})
				}
				return renderJSON(cmd, rows)
			}

			table := newTablePrinter(cmd)

			table.AddField(strings.ToUpper("Kind"))
			table.AddField(strings.ToUpper("Label"))
			table.AddField(strings.ToUpper("Signature"))
			table.AddField(strings.ToUpper("Section"))
			table.EndRow()

			for _, t := range types {
				table.AddField(t.Kind.String())
				table.AddField(t.Label)
				table.AddField(t.Signature())
				table.AddField(schema.Classify(t.Kind).String())
				table.EndRow()
			}

			return errors.WithStack(table.Render())
		},
	}

	registerFormatFlag(cmd.Flags(), &format)

	return &cmd
}

func sectionsCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "sections",
		Short: "List sections in canonical order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			sections := document.DefaultSchema().Sections()

			if format == "json" {
				return renderJSON(cmd, sections)
			}

			table := newTablePrinter(cmd)

			table.AddField(strings.ToUpper("ID"))
			table.AddField(strings.ToUpper("Title"))
			table.AddField(strings.ToUpper("Multiple"))
			table.AddField(strings.ToUpper("Kinds"))
			table.EndRow()

			for _, section := range sections {
				kinds := make([]string, 0, len(section.AcceptedKinds))
				for _, k := range section.AcceptedKinds {
					kinds = append(kinds, k.String())
				}

				table.AddField(section.ID.String())
				table.AddField(section.Title)
				table.AddField(yesNo(section.AllowMultiple))
				table.AddField(strings.Join(kinds, ","))
				table.EndRow()
			}

			return errors.WithStack(table.Render())
		},
	}

	registerFormatFlag(cmd.Flags(), &format)

	return &cmd
}

func themesCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "themes [pattern ...]",
		Short: "List themes.",
		Long: `List themes found in themes.dir. Names are matched against the optional
glob patterns.`,
		Example: `  flashresume themes "modern-*"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			themes, err := c.List(args...)
			if err != nil {
				return err
			}

			type themeRow struct {
				*theme.Descriptor
				ConfigFile string `json:"configFile"`
				Error      string `json:"error,omitempty"`
			}

			rows := make([]themeRow, 0, len(themes))
			for _, t := range themes {
				row := themeRow{Descriptor: t.Descriptor, ConfigFile: t.ConfigFile}
				if t.Err != nil {
					row.Error = t.Err.Error()
				}
				rows = append(rows, row)
			}

			if format == "json" {
				return renderJSON(cmd, rows)
			}

			table := newTablePrinter(cmd)

			table.AddField(strings.ToUpper("Name"))
			table.AddField(strings.ToUpper("Title"))
			table.AddField(strings.ToUpper("Config"))
			table.AddField(strings.ToUpper("Functions"))
			table.AddField(strings.ToUpper("Status"))
			table.EndRow()

			for _, row := range rows {
				status := "ok"
				if row.Error != "" {
					status = "invalid"
				}

				table.AddField(row.Name)
				table.AddField(row.Title())
				table.AddField(row.ConfigFile)
				table.AddField(strconv.Itoa(len(row.CoreFunctions) + len(row.Functions)))
				table.AddField(status)
				table.EndRow()
			}

			return errors.WithStack(table.Render())
		},
	}

	registerFormatFlag(cmd.Flags(), &format)

	return &cmd
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
