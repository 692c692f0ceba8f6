package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/latinlookup/internal/cli"
	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "format"
}

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatHTML, FormatYAML}
)

func newLookupCommand() *cobra.Command {
	format := FormatText

	cmd := &cobra.Command{
		Use:   "lookup <selected text...>",
		Short: "Look up the first Latin word of the selected text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reader, cleanup, err := newReader(cfg)
			if err != nil {
				return fmt.Errorf("newReader() > %w", err)
			}
			defer cleanup()

			candidate, result, err := reader.LookupSelection(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				if candidate != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), "Failed to lookup word")
				}
				return fmt.Errorf("reader.LookupSelection() > %w", err)
			}
			return writeResult(cmd.OutOrStdout(), format, candidate, result)
		},
	}
	cmd.Flags().Var(&format, "format", fmt.Sprintf("Output format. Possible values are %v", allFormats))
	return cmd
}

func writeResult(w io.Writer, format Format, word string, result latinwords.ParseResult) error {
	switch format {
	case FormatHTML:
		if _, err := fmt.Fprintln(w, latinwords.FormatHTML(result)); err != nil {
			return fmt.Errorf("fmt.Fprintln() > %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]latinwords.ParseResult{word: result}); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return encoder.Close()
	default:
		return cli.NewResultPrinter(w).Print(word, result)
	}
}
