package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/latinlookup/internal/collector"
	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

func newParseCommand() *cobra.Command {
	var words []string
	format := FormatYAML

	cmd := &cobra.Command{
		Use:   "parse <responses.json>",
		Short: "Parse the responses saved by the collect command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			responses, err := collector.LoadResponses(args[0])
			if err != nil {
				return fmt.Errorf("collector.LoadResponses() > %w", err)
			}
			return writeParsedResponses(cmd.OutOrStdout(), format, responses, words)
		},
	}
	cmd.Flags().StringSliceVar(&words, "word", nil, "Only parse these words")
	cmd.Flags().Var(&format, "format", fmt.Sprintf("Output format. Possible values are %v", allFormats))
	return cmd
}

func writeParsedResponses(w io.Writer, format Format, responses map[string]string, words []string) error {
	if len(words) == 0 {
		words = make([]string, 0, len(responses))
		for word := range responses {
			words = append(words, word)
		}
	}
	sort.Strings(words)

	results := make(map[string]latinwords.ParseResult, len(words))
	for _, word := range words {
		message, ok := responses[word]
		if !ok {
			return fmt.Errorf("no response for %q", word)
		}
		if strings.HasPrefix(message, collector.ErrorPrefix) {
			continue
		}
		results[word] = latinwords.Parse(latinwords.RawResponse{Status: latinwords.StatusOK, Message: message})
	}

	if format == FormatYAML {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return encoder.Close()
	}

	for _, word := range words {
		result, ok := results[word]
		if !ok {
			continue
		}
		if err := writeResult(w, format, word, result); err != nil {
			return err
		}
	}
	return nil
}
