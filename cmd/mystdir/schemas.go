package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mystdir/internal/schemas"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas [name...]",
	Short: "List the known directive schemas",
	Long:  `List the builtin directive schemas together with those loaded from --schemas files and mystdir.toml`,
	RunE:  runSchemas,
}

func init() {
	schemasCmd.Flags().String("format", "text", "output format (text|json)")
}

type schemaJSON struct {
	Name                    string   `json:"name"`
	RequiredArguments       int      `json:"required_arguments"`
	OptionalArguments       int      `json:"optional_arguments"`
	FinalArgumentWhitespace bool     `json:"final_argument_whitespace"`
	HasContent              bool     `json:"has_content"`
	AcceptAnyOption         bool     `json:"accept_any_option,omitempty"`
	Options                 []string `json:"options"`
}

func runSchemas(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	settings, err := loadRunSettings(cmd, out)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	list, err := selectSchemas(settings.Driver.Registry, args)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "text":
		return writeSchemasText(out, list)
	}
	return fmt.Errorf("unsupported format %q (must be text or json)", format)
}

func selectSchemas(reg *schemas.Registry, names []string) ([]schemaJSON, error) {
	if len(names) == 0 {
		names = reg.Names()
	}
	out := make([]schemaJSON, 0, len(names))
	for _, name := range names {
		s, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown directive %q", name)
		}
		out = append(out, schemaJSON{
			Name:                    s.Name,
			RequiredArguments:       s.RequiredArguments,
			OptionalArguments:       s.OptionalArguments,
			FinalArgumentWhitespace: s.FinalArgumentWhitespace,
			HasContent:              s.HasContent,
			AcceptAnyOption:         s.AcceptAnyOption,
			Options:                 s.OptionNames(),
		})
	}
	return out, nil
}

func writeSchemasText(w io.Writer, list []schemaJSON) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tARGS\tCONTENT\tOPTIONS")
	for _, s := range list {
		args := fmt.Sprintf("%d+%d", s.RequiredArguments, s.OptionalArguments)
		if s.FinalArgumentWhitespace {
			args += " ws"
		}
		content := "no"
		if s.HasContent {
			content = "yes"
		}
		opts := strings.Join(s.Options, ", ")
		if s.AcceptAnyOption {
			opts = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, args, content, opts)
	}
	return tw.Flush()
}
